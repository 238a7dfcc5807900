package ports

import "context"

// UserDirectory resolves user ids to display names. Ids without a matching
// user are absent from the returned map.
type UserDirectory interface {
	DisplayNames(ctx context.Context, ids []string) (map[string]string, error)
}

// NoopUserDirectory resolves nothing.
var NoopUserDirectory UserDirectory = noopUserDirectory{}

type noopUserDirectory struct{}

func (noopUserDirectory) DisplayNames(_ context.Context, _ []string) (map[string]string, error) {
	return map[string]string{}, nil
}
