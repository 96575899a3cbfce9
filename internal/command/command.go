package command

import "context"

type Client interface {
	// HandleCommand serves bot commands until ctx is done or the updates channel closes.
	HandleCommand(ctx context.Context) error
}
