package graphql

// Archive queries. The full block selection carries zkApp commands; not
// every archive deployment serves that part of the schema, so a reduced
// selection exists as the negotiated fallback.

const blockFieldsCore = `
      stateHash
      blockHeight
      canonical
      dateTime
      creatorAccount {
        publicKey
      }
      transactions {
        userCommands {
          hash
          kind
          from
          to
          amount
          fee
          nonce
          memo
          failureReason
        }`

const blockFieldsZkApp = `
        zkappCommands {
          hash
          failureReasons {
            failures
          }
          zkappCommand {
            memo
            feePayer {
              body {
                publicKey
                fee
                nonce
              }
            }
            accountUpdates {
              body {
                publicKey
              }
            }
          }
        }`

const queryRecentBlocksFull = `query RecentBlocks($limit: Int!) {
  blocks(limit: $limit, sortBy: BLOCKHEIGHT_DESC, query: {canonical: true}) {` +
	blockFieldsCore + blockFieldsZkApp + `
      }
  }
}`

const queryRecentBlocksReduced = `query RecentBlocks($limit: Int!) {
  blocks(limit: $limit, sortBy: BLOCKHEIGHT_DESC, query: {canonical: true}) {` +
	blockFieldsCore + `
      }
  }
}`

const queryBlocksSinceFull = `query BlocksSince($limit: Int!, $since: DateTime!) {
  blocks(limit: $limit, sortBy: BLOCKHEIGHT_DESC, query: {canonical: true, dateTime_gte: $since}) {` +
	blockFieldsCore + blockFieldsZkApp + `
      }
  }
}`

const queryBlocksSinceReduced = `query BlocksSince($limit: Int!, $since: DateTime!) {
  blocks(limit: $limit, sortBy: BLOCKHEIGHT_DESC, query: {canonical: true, dateTime_gte: $since}) {` +
	blockFieldsCore + `
      }
  }
}`

const queryBestHeight = `query BestHeight {
  blocks(limit: 1, sortBy: BLOCKHEIGHT_DESC, query: {canonical: true}) {
    blockHeight
  }
}`

// Daemon queries.

const queryPooledUserCommands = `query PooledUserCommands {
  pooledUserCommands {
    hash
    kind
    nonce
    memo
    failureReason
    from
    to
    amount
    fee
  }
}`

const queryPooledZkAppCommands = `query PooledZkAppCommands {
  pooledZkappCommands {
    hash
    zkappCommand {
      memo
      feePayer {
        body {
          publicKey
          fee
          nonce
        }
      }
      accountUpdates {
        body {
          publicKey
        }
      }
    }
  }
}`

const queryAccountFull = `query Account($publicKey: PublicKey!) {
  account(publicKey: $publicKey) {
    publicKey
    nonce
    delegate
    balance {
      total
      stateHash
    }
    stakingActive
    verificationKey {
      hash
    }
  }
}`

const queryAccountMinimal = `query AccountMinimal($publicKey: PublicKey!) {
  account(publicKey: $publicKey) {
    publicKey
    nonce
    balance {
      total
    }
  }
}`

// Daemon subscription used by the live block feed.
const subscriptionNewBlock = `subscription NewBlock {
  newBlock {
    stateHash
    protocolState {
      consensusState {
        blockHeight
      }
    }
  }
}`
