// Package domain contains the chain context domain model: blocks, commands,
// unified transactions and the aggregate types derived from them.
package domain

import "time"

// Block is one archive block with its embedded command lists.
type Block struct {
	StateHash     string
	Height        uint64
	Canonical     bool
	Timestamp     time.Time
	Creator       string
	UserCommands  []UserCommand
	ZkAppCommands []ZkAppCommand
}

// TxCount is the total number of commands in the block.
func (b Block) TxCount() int {
	return len(b.UserCommands) + len(b.ZkAppCommands)
}
