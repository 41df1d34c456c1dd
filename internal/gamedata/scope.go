package gamedata

import (
	"strconv"
	"strings"

	"github.com/xivmarket/marketboard/internal/domain"
)

// ScopeKind discriminates the query scopes a history request can target.
type ScopeKind int

const (
	ScopeWorld ScopeKind = iota
	ScopeDataCenter
	ScopeRegion
)

// Scope is a resolved query target: a single world, all worlds of a
// data center, or all worlds of a region.
type Scope struct {
	Kind       ScopeKind
	WorldID    int32
	WorldName  string
	DcName     string
	RegionName string
	WorldIDs   []int32
}

// IsWorld reports whether the scope targets a single world.
func (s *Scope) IsWorld() bool {
	return s.Kind == ScopeWorld
}

// ResolveScope resolves a path selector into a scope. The selector is
// tried as a world ID, then a world name, then a data-center name, then
// a region name, all case-insensitively.
func ResolveScope(p Provider, selector string) (*Scope, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, domain.ErrWorldNotFound
	}

	if id, err := strconv.ParseInt(selector, 10, 32); err == nil {
		worldID := int32(id)
		if name, ok := p.AvailableWorlds()[worldID]; ok {
			return &Scope{
				Kind:      ScopeWorld,
				WorldID:   worldID,
				WorldName: name,
				WorldIDs:  []int32{worldID},
			}, nil
		}
		return nil, domain.ErrWorldNotFound
	}

	lower := strings.ToLower(selector)
	if worldID, ok := p.AvailableWorldsReversed()[lower]; ok {
		return &Scope{
			Kind:      ScopeWorld,
			WorldID:   worldID,
			WorldName: p.AvailableWorlds()[worldID],
			WorldIDs:  []int32{worldID},
		}, nil
	}

	for _, dc := range p.DataCenters() {
		if strings.EqualFold(dc.Name, selector) {
			return &Scope{
				Kind:     ScopeDataCenter,
				DcName:   dc.Name,
				WorldIDs: dc.WorldIDs,
			}, nil
		}
	}

	var regionWorlds []int32
	var regionName string
	for _, dc := range p.DataCenters() {
		if strings.EqualFold(dc.Region, selector) {
			regionName = dc.Region
			regionWorlds = append(regionWorlds, dc.WorldIDs...)
		}
	}
	if len(regionWorlds) > 0 {
		return &Scope{
			Kind:       ScopeRegion,
			RegionName: regionName,
			WorldIDs:   regionWorlds,
		}, nil
	}

	return nil, domain.ErrWorldNotFound
}
