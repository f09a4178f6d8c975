package filter

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"drivesync/internal/model"
)

// FolderResolver looks up a folder's display name and parent by identifier.
type FolderResolver interface {
	FolderName(ctx context.Context, folderID string) (name, parentID string, err error)
}

// maxFolderDepth bounds the upward walk so a parent cycle cannot hang a run.
const maxFolderDepth = 32

type cachedFolder struct {
	name     string
	parentID string
}

// KeyBuilder derives the destination object key for a file. Without
// preserve, the key is the bare display name and same-named files collide
// last-write-wins. With preserve, parent folder names are resolved and
// slash-joined in front of the name, stopping at the scoped folder.
type KeyBuilder struct {
	preserve bool
	stopAt   string
	resolver FolderResolver
	cache    map[string]cachedFolder
	log      *zap.Logger
}

func NewKeyBuilder(preserve bool, stopAt string, resolver FolderResolver, log *zap.Logger) *KeyBuilder {
	return &KeyBuilder{
		preserve: preserve,
		stopAt:   stopAt,
		resolver: resolver,
		cache:    make(map[string]cachedFolder),
		log:      log,
	}
}

func (b *KeyBuilder) Key(ctx context.Context, rec model.FileRecord) string {
	if !b.preserve || len(rec.Parents) == 0 {
		return rec.Name
	}

	parts, err := b.folderPath(ctx, rec.Parents[0])
	if err != nil {
		b.log.Warn("failed to resolve folder path, using bare name",
			zap.String("file", rec.Name),
			zap.Error(err))
		return rec.Name
	}

	return strings.Join(append(parts, rec.Name), "/")
}

func (b *KeyBuilder) folderPath(ctx context.Context, folderID string) ([]string, error) {
	var parts []string

	for depth := 0; folderID != "" && folderID != b.stopAt && depth < maxFolderDepth; depth++ {
		folder, ok := b.cache[folderID]
		if !ok {
			name, parentID, err := b.resolver.FolderName(ctx, folderID)
			if err != nil {
				return nil, err
			}

			folder = cachedFolder{name: name, parentID: parentID}
			b.cache[folderID] = folder
		}

		parts = append([]string{folder.name}, parts...)
		folderID = folder.parentID
	}

	return parts, nil
}
