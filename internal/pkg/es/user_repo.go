package es

import (
	"context"
	"errors"
	log "log/slog"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

type UserRepo interface {
	IndexUser(ctx context.Context, user *UserES, version int64) error
	DeleteUser(ctx context.Context, id uint64) error
	SearchUsers(ctx context.Context, query string, size int) ([]*UserES, error)
}

type UserRepoImpl struct {
}

func NewUserRepo() UserRepo {
	return &UserRepoImpl{}
}

// IndexUser upserts a user document with external versioning so that
// out-of-order events never overwrite newer data.
func (s *UserRepoImpl) IndexUser(ctx context.Context, user *UserES, version int64) error {
	docID := strconv.FormatUint(user.ID, 10)

	_, err := Client.Index(UserIndex).
		Id(docID).
		Document(user).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				log.Warn("Version conflict detected, skipping old data",
					"user_id", user.ID,
					"version", version)
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)
	_, err := Client.Delete(UserIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				log.Warn("User already deleted or not found in ES", "id", id)
				return nil
			}
		}
		return err
	}
	return nil
}

// SearchUsers runs a fuzzy multi-match over display name and bio.
func (s *UserRepoImpl) SearchUsers(ctx context.Context, query string, size int) ([]*UserES, error) {
	res, err := Client.Search().
		Index(UserIndex).
		Request(&search.Request{
			Size: &size,
			Query: &types.Query{
				MultiMatch: &types.MultiMatchQuery{
					Query:     query,
					Fields:    []string{"display_name^2", "bio"},
					Fuzziness: "AUTO",
				},
			},
		}).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*UserES, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var u UserES
		if err := json.Unmarshal(hit.Source_, &u); err != nil {
			log.Warn("Failed to decode user document", "err", err)
			continue
		}
		users = append(users, &u)
	}
	return users, nil
}
