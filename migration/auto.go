package migration

import (
	"context"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

// AutoMigrate creates the tables of the latest entities. It is used by
// sqlite databases and tests.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Group{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Follow{},
	)
}
