package application

import (
	"context"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

// UnknownUser is shown in place of a user reference that no longer resolves.
const UnknownUser = "unknown"

type nameResolver struct {
	users ports.UserDirectory
}

func (r nameResolver) resolve(ctx context.Context, ids []string) (map[string]string, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return map[string]string{}, nil
	}
	return r.users.DisplayNames(ctx, unique)
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return UnknownUser
}
