package app

// EndpointTarget is anything that can be retargeted at a new GraphQL
// endpoint. The chain context's clients implement it.
type EndpointTarget interface {
	SetEndpoint(url string)
}

// SelectionStore persists the last selected network id across runs.
type SelectionStore interface {
	Save(slot string, v any) error
	Load(slot string, out any) (bool, error)
}
