package domain

import (
	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// CommunityID uniquely identifies a community.
type CommunityID uuid.UUID

// PostID uniquely identifies a post.
type PostID uuid.UUID

// CommentID uniquely identifies a comment.
type CommentID uuid.UUID

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id CommunityID) String() string { return uuid.UUID(id).String() }
func (id PostID) String() string      { return uuid.UUID(id).String() }
func (id CommentID) String() string   { return uuid.UUID(id).String() }

// MarshalText encodes ids as canonical UUID strings so they render the same
// way in JSON bodies, logs and token claims.
func (id UserID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id CommunityID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id PostID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id CommentID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CommunityID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PostID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CommentID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseUserID parses the canonical string form of a user id.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)

	return UserID(id), err //nolint: wrapcheck
}

// ParseCommunityID parses the canonical string form of a community id.
func ParseCommunityID(s string) (CommunityID, error) {
	id, err := uuid.Parse(s)

	return CommunityID(id), err //nolint: wrapcheck
}

// ParsePostID parses the canonical string form of a post id.
func ParsePostID(s string) (PostID, error) {
	id, err := uuid.Parse(s)

	return PostID(id), err //nolint: wrapcheck
}

// ParseCommentID parses the canonical string form of a comment id.
func ParseCommentID(s string) (CommentID, error) {
	id, err := uuid.Parse(s)

	return CommentID(id), err //nolint: wrapcheck
}
