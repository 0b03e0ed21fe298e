// Package seed fills an empty store with demo data and removes it again.
package seed

import (
	"context"
	"fmt"
	"forum/internal/communities"
	"forum/pkg/domain"
	"forum/pkg/logger"
	"forum/pkg/storage"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Communities are the topics every seeded forum starts with.
var Communities = []domain.Community{ //nolint: gochecknoglobals
	{Name: "History", Order: 1},
	{Name: "Food", Order: 2},
	{Name: "Pets", Order: 3},
	{Name: "Health", Order: 4},
	{Name: "Fashion", Order: 5},
	{Name: "Exercise", Order: 6},
	{Name: "Others", Order: 7},
}

// Users are the demo members.
var Users = []domain.User{ //nolint: gochecknoglobals
	{Username: "mira", FullName: "Mira Kowalski", Image: "https://images.example.com/avatar/mira.jpg"},
	{Username: "theo", FullName: "Theo Lindqvist", Image: "https://images.example.com/avatar/theo.jpg"},
	{Username: "ava", FullName: "Ava Moreno", Image: "https://images.example.com/avatar/ava.jpg"},
}

// Options tune the amount of generated content.
type Options struct {
	// Posts is the number of posts to create.
	Posts int
	// Seed makes generated content reproducible.
	Seed uint64
}

// Stats counts the rows a run created or removed.
type Stats struct {
	Users       int64 `json:"users"`
	Communities int64 `json:"communities"`
	Posts       int64 `json:"posts"`
	Comments    int64 `json:"comments"`
}

// Seeder writes and removes demo data.
type Seeder struct {
	storage     storage.Storage
	communities communities.Service
	options     Options
	now         func() time.Time
}

// New creates a Seeder. Community removal goes through the communities
// service so failures are logged the same way everywhere.
func New(storage storage.Storage, communities communities.Service, options Options) *Seeder {
	return &Seeder{
		storage:     storage,
		communities: communities,
		options:     options,
		now:         time.Now,
	}
}

// Seed creates the demo users, the communities, Options.Posts posts with
// random authors and communities, and one to three comments per post. All
// rows are written in a single transaction.
func (s *Seeder) Seed(ctx context.Context) (Stats, error) {
	var stats Stats
	rnd := rand.New(rand.NewPCG(s.options.Seed, s.options.Seed^0x9e3779b97f4a7c15)) //nolint: gosec
	text := lorem{rnd: rnd}

	err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		users := make([]domain.User, 0, len(Users))
		for _, u := range Users {
			u.LastLogin = s.now().UTC()
			created, err := tx.CreateUser(ctx, u)
			if err != nil {
				return fmt.Errorf("could not seed user %q: %w", u.Username, err)
			}
			users = append(users, *created)
		}
		stats.Users = int64(len(users))

		comms, err := tx.CreateCommunities(ctx, Communities...)
		if err != nil {
			return fmt.Errorf("could not seed communities: %w", err)
		}
		stats.Communities = int64(len(comms))

		for range s.options.Posts {
			post, err := tx.CreatePost(ctx, domain.Post{
				Title:       text.sentence(),
				Content:     text.paragraphs(text.between(1, 14)),
				AuthorID:    users[rnd.IntN(len(users))].ID,
				CommunityID: comms[rnd.IntN(len(comms))].ID,
			})
			if err != nil {
				return fmt.Errorf("could not seed post: %w", err)
			}
			stats.Posts++

			for range text.between(1, 3) {
				if _, err := tx.CreateComment(ctx, domain.Comment{
					Content:  text.sentence(),
					PostID:   post.ID,
					AuthorID: users[rnd.IntN(len(users))].ID,
				}); err != nil {
					return fmt.Errorf("could not seed comment: %w", err)
				}
				stats.Comments++
			}
		}

		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("could not seed: %w", err)
	}

	logger.Info(ctx, "seeding completed",
		zap.Int64("users", stats.Users),
		zap.Int64("communities", stats.Communities),
		zap.Int64("posts", stats.Posts),
		zap.Int64("comments", stats.Comments))

	return stats, nil
}

// Drop deletes comments, posts, communities and users, in that order. It
// stops at the first failure.
func (s *Seeder) Drop(ctx context.Context) (Stats, error) {
	var (
		stats Stats
		err   error
	)

	if stats.Comments, err = s.storage.DeleteAllComments(ctx); err != nil {
		return stats, fmt.Errorf("could not drop comments: %w", err)
	}
	if stats.Posts, err = s.storage.DeleteAllPosts(ctx); err != nil {
		return stats, fmt.Errorf("could not drop posts: %w", err)
	}
	if stats.Communities, err = s.communities.DropAll(ctx); err != nil {
		return stats, fmt.Errorf("could not drop communities: %w", err)
	}
	if stats.Users, err = s.storage.DeleteAllUsers(ctx); err != nil {
		return stats, fmt.Errorf("could not drop users: %w", err)
	}

	logger.Info(ctx, "drop completed",
		zap.Int64("users", stats.Users),
		zap.Int64("communities", stats.Communities),
		zap.Int64("posts", stats.Posts),
		zap.Int64("comments", stats.Comments))

	return stats, nil
}
