package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func statusCacheHandlers() repository.ModelHandlers[*statusCacheRecord] {
	return repository.ModelHandlers[*statusCacheRecord]{
		NewRecord: func() *statusCacheRecord {
			return &statusCacheRecord{}
		},
		GetID: func(record *statusCacheRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *statusCacheRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *statusCacheRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func assetActivityHandlers() repository.ModelHandlers[*assetActivityRecord] {
	return repository.ModelHandlers[*assetActivityRecord]{
		NewRecord: func() *assetActivityRecord {
			return &assetActivityRecord{}
		},
		GetID: func(record *assetActivityRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *assetActivityRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *assetActivityRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
