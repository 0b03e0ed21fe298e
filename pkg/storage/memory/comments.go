package memory

import (
	"cmp"
	"context"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"forum/pkg/storage"
	"slices"

	"github.com/google/uuid"
)

func (s *Store) CreateComment(_ context.Context, comment domain.Comment) (*domain.Comment, error) {
	st, unlock := s.write()
	defer unlock()

	if _, ok := st.posts[comment.PostID]; !ok {
		return nil, fmt.Errorf("%w: post %s", storage.ErrReferenced, comment.PostID)
	}
	if _, ok := st.users[comment.AuthorID]; !ok {
		return nil, fmt.Errorf("%w: author %s", storage.ErrReferenced, comment.AuthorID)
	}

	now := s.now()
	comment.ID = domain.CommentID(uuid.New())
	comment.CreatedAt = now
	comment.UpdatedAt = now
	st.comments[comment.ID] = commentRow{Comment: comment, seq: st.next()}

	return &comment, nil
}

func (s *Store) CommentByID(_ context.Context, id domain.CommentID) (*domain.Comment, error) {
	st, unlock := s.read()
	defer unlock()

	row, ok := st.comments[id]
	if !ok {
		return nil, nil
	}

	return &row.Comment, nil
}

func (s *Store) UpdateComment(_ context.Context, id domain.CommentID, content string) (*domain.Comment, error) {
	st, unlock := s.write()
	defer unlock()

	row, ok := st.comments[id]
	if !ok {
		return nil, nil
	}

	row.Content = content
	row.UpdatedAt = s.now()
	st.comments[id] = row

	return &row.Comment, nil
}

func (s *Store) DeleteComment(_ context.Context, id domain.CommentID) (*domain.Comment, error) {
	st, unlock := s.write()
	defer unlock()

	row, ok := st.comments[id]
	if !ok {
		return nil, nil
	}
	delete(st.comments, id)

	return &row.Comment, nil
}

func (s *Store) PostComments(_ context.Context,
	postID domain.PostID,
	window paging.Window) ([]domain.CommentView, error) {
	st, unlock := s.read()
	defer unlock()

	var rows []commentRow
	for _, c := range st.comments {
		if c.PostID == postID {
			rows = append(rows, c)
		}
	}
	slices.SortFunc(rows, func(a, b commentRow) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.seq, a.seq))
	})

	start, end := bounds(window, len(rows))

	out := make([]domain.CommentView, 0, end-start)
	for _, c := range rows[start:end] {
		author := st.users[c.AuthorID]
		out = append(out, domain.CommentView{
			Comment: c.Comment,
			Author: domain.AuthorSummary{
				ID:       author.ID,
				Username: author.Username,
				FullName: author.FullName,
				Image:    author.Image,
			},
		})
	}

	return out, nil
}

func (s *Store) CountPostComments(_ context.Context, postID domain.PostID) (int64, error) {
	st, unlock := s.read()
	defer unlock()

	var n int64
	for _, c := range st.comments {
		if c.PostID == postID {
			n++
		}
	}

	return n, nil
}

func (s *Store) DeleteAllComments(_ context.Context) (int64, error) {
	st, unlock := s.write()
	defer unlock()

	n := int64(len(st.comments))
	clear(st.comments)

	return n, nil
}
