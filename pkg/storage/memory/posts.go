package memory

import (
	"cmp"
	"context"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"forum/pkg/storage"
	"slices"
	"strings"

	"github.com/google/uuid"
)

func (s *Store) CreatePost(_ context.Context, post domain.Post) (*domain.Post, error) {
	st, unlock := s.write()
	defer unlock()

	if _, ok := st.users[post.AuthorID]; !ok {
		return nil, fmt.Errorf("%w: author %s", storage.ErrReferenced, post.AuthorID)
	}
	if _, ok := st.communities[post.CommunityID]; !ok {
		return nil, fmt.Errorf("%w: community %s", storage.ErrReferenced, post.CommunityID)
	}

	now := s.now()
	post.ID = domain.PostID(uuid.New())
	post.CreatedAt = now
	post.UpdatedAt = now
	st.posts[post.ID] = postRow{Post: post, seq: st.next()}

	return &post, nil
}

func (s *Store) PostByID(_ context.Context, id domain.PostID) (*domain.Post, error) {
	st, unlock := s.read()
	defer unlock()

	row, ok := st.posts[id]
	if !ok {
		return nil, nil
	}

	return &row.Post, nil
}

func (s *Store) PostSummaryByID(_ context.Context, id domain.PostID) (*domain.PostSummary, error) {
	st, unlock := s.read()
	defer unlock()

	row, ok := st.posts[id]
	if !ok {
		return nil, nil
	}

	summary := st.summarize(row.Post)

	return &summary, nil
}

func (s *Store) UpdatePost(_ context.Context, id domain.PostID, updates domain.PostUpdates) (*domain.Post, error) {
	st, unlock := s.write()
	defer unlock()

	row, ok := st.posts[id]
	if !ok {
		return nil, nil
	}

	if updates.CommunityID != nil {
		if _, ok := st.communities[*updates.CommunityID]; !ok {
			return nil, fmt.Errorf("%w: community %s", storage.ErrReferenced, *updates.CommunityID)
		}
		row.CommunityID = *updates.CommunityID
	}
	if updates.Title != nil {
		row.Title = *updates.Title
	}
	if updates.Content != nil {
		row.Content = *updates.Content
	}
	row.UpdatedAt = s.now()
	st.posts[id] = row

	return &row.Post, nil
}

// DeletePost removes the post together with its comments.
func (s *Store) DeletePost(_ context.Context, id domain.PostID) (*domain.Post, error) {
	st, unlock := s.write()
	defer unlock()

	row, ok := st.posts[id]
	if !ok {
		return nil, nil
	}

	delete(st.posts, id)
	for cid, c := range st.comments {
		if c.PostID == id {
			delete(st.comments, cid)
		}
	}

	return &row.Post, nil
}

// ListPosts orders by creation time, newest first; posts created at the same
// instant are ordered by insertion, newest first.
func (s *Store) ListPosts(_ context.Context,
	filter domain.PostFilter,
	window paging.Window) ([]domain.PostSummary, error) {
	st, unlock := s.read()
	defer unlock()

	rows := st.matching(filter)
	slices.SortFunc(rows, func(a, b postRow) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.seq, a.seq))
	})

	start, end := bounds(window, len(rows))

	out := make([]domain.PostSummary, 0, end-start)
	for _, row := range rows[start:end] {
		out = append(out, st.summarize(row.Post))
	}

	return out, nil
}

func (s *Store) CountPosts(_ context.Context, filter domain.PostFilter) (int64, error) {
	st, unlock := s.read()
	defer unlock()

	return int64(len(st.matching(filter))), nil
}

func (s *Store) CountCommunityPosts(_ context.Context, id domain.CommunityID) (int64, error) {
	st, unlock := s.read()
	defer unlock()

	var n int64
	for _, p := range st.posts {
		if p.CommunityID == id {
			n++
		}
	}

	return n, nil
}

// DeleteAllPosts removes every post and, by cascade, every comment.
func (s *Store) DeleteAllPosts(_ context.Context) (int64, error) {
	st, unlock := s.write()
	defer unlock()

	n := int64(len(st.posts))
	clear(st.posts)
	clear(st.comments)

	return n, nil
}

// matching applies filter in the order search, community, author. Search is
// a literal, case-sensitive substring match on title or content.
func (st *state) matching(filter domain.PostFilter) []postRow {
	var out []postRow
	for _, p := range st.posts {
		if filter.Search != "" &&
			!strings.Contains(p.Title, filter.Search) &&
			!strings.Contains(p.Content, filter.Search) {
			continue
		}
		if filter.CommunityID != nil && p.CommunityID != *filter.CommunityID {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		out = append(out, p)
	}

	return out
}

func (st *state) summarize(p domain.Post) domain.PostSummary {
	author := st.users[p.AuthorID]
	community := st.communities[p.CommunityID]

	var comments int64
	for _, c := range st.comments {
		if c.PostID == p.ID {
			comments++
		}
	}

	return domain.PostSummary{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Author: domain.AuthorSummary{
			ID:       author.ID,
			Username: author.Username,
			FullName: author.FullName,
			Image:    author.Image,
		},
		Community: domain.CommunitySummary{
			ID:   community.ID,
			Name: community.Name,
		},
		CommentCount: comments,
	}
}
