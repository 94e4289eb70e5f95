// ABOUTME: Catalog extraction and GraphQL envelope parsing.
// ABOUTME: Maps raw item lists into a name-to-tags index and per-type counts.

package catalog

import (
	"encoding/json"

	"github.com/jfeddern/CatalogScout/internal/types"
)

// defaultType labels items whose type is absent from the wire data.
const defaultType = "Unknown"

// Extract maps a raw item list into a CatalogIndex and TypeStats. Items
// without a name are skipped entirely and do not affect the stats. On
// duplicate names the last occurrence wins; there is no merge logic.
func Extract(items []types.Item) (types.CatalogIndex, types.TypeStats) {
	index := make(types.CatalogIndex)
	stats := make(types.TypeStats)

	for _, item := range items {
		if item.Name == "" {
			continue
		}

		itemType := item.Type
		if itemType == "" {
			itemType = defaultType
		}
		stats[itemType]++

		tags := item.TagNames
		if tags == nil {
			tags = []string{}
		}
		index[item.Name] = tags
	}

	return index, stats
}

type repositoryListEnvelope struct {
	Data *struct {
		DhiListRepositories *struct {
			Items *[]types.Item `json:"items"`
		} `json:"dhiListRepositories"`
	} `json:"data"`
}

// ParseRepositoryList decodes the dhiListRepositories response envelope into
// the raw item list. Missing nesting or wrong element types yield a
// FormatError, never a partial result.
func ParseRepositoryList(payload []byte) ([]types.Item, error) {
	var envelope repositoryListEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &FormatError{Reason: "decoding repository list", Err: err}
	}

	if envelope.Data == nil || envelope.Data.DhiListRepositories == nil || envelope.Data.DhiListRepositories.Items == nil {
		return nil, &FormatError{Reason: "missing data.dhiListRepositories.items"}
	}

	return *envelope.Data.DhiListRepositories.Items, nil
}

type tagDefinitionsEnvelope struct {
	Data *struct {
		DhiRepository *struct {
			TagDefinitions []types.TagDefinition `json:"tagDefinitions"`
		} `json:"dhiRepository"`
	} `json:"data"`
}

// ParseTagDefinitions decodes the dhiRepository response envelope into the
// repository's tag definitions. An empty definition list is a valid result;
// a missing envelope is a FormatError.
func ParseTagDefinitions(payload []byte) ([]types.TagDefinition, error) {
	var envelope tagDefinitionsEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &FormatError{Reason: "decoding tag definitions", Err: err}
	}

	if envelope.Data == nil {
		return nil, &FormatError{Reason: "missing data.dhiRepository"}
	}
	if envelope.Data.DhiRepository == nil {
		return nil, nil
	}

	return envelope.Data.DhiRepository.TagDefinitions, nil
}
