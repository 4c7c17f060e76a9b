package dbus

import (
	"context"

	godbus "github.com/godbus/dbus/v5"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// provider is the object exported on the bus. godbus exports every method
// whose last result is *godbus.Error, so it carries nothing else.
type provider struct {
	ctx context.Context
	svc driving.SearchProvider
}

// GetInitialResultSet implements GetInitialResultSet(as) -> as.
func (p *provider) GetInitialResultSet(terms []string) ([]string, *godbus.Error) {
	logger.Debug("GetInitialResultSet %q", terms)
	return p.svc.InitialResultSet(p.ctx, domain.SearchTerms(terms)), nil
}

// GetSubsearchResultSet implements GetSubsearchResultSet(as, as) -> as.
func (p *provider) GetSubsearchResultSet(previous, terms []string) ([]string, *godbus.Error) {
	logger.Debug("GetSubsearchResultSet %q (%d previous)", terms, len(previous))
	return p.svc.SubsearchResultSet(p.ctx, previous, domain.SearchTerms(terms)), nil
}

// GetResultMetas implements GetResultMetas(as) -> aa{sv}.
func (p *provider) GetResultMetas(ids []string) ([]map[string]godbus.Variant, *godbus.Error) {
	logger.Debug("GetResultMetas %q", ids)
	metas := p.svc.ResultMetas(p.ctx, ids)

	out := make([]map[string]godbus.Variant, 0, len(metas))
	for _, meta := range metas {
		entry := make(map[string]godbus.Variant, 3)
		for k, v := range meta.Map() {
			entry[k] = godbus.MakeVariant(v)
		}
		out = append(out, entry)
	}
	return out, nil
}

// ActivateResult implements ActivateResult(s, as, u).
func (p *provider) ActivateResult(id string, terms []string, timestamp uint32) *godbus.Error {
	logger.Debug("ActivateResult %q", id)
	p.svc.ActivateResult(p.ctx, id, domain.SearchTerms(terms), timestamp)
	return nil
}

// LaunchSearch implements LaunchSearch(as, u).
func (p *provider) LaunchSearch(terms []string, timestamp uint32) *godbus.Error {
	logger.Debug("LaunchSearch %q", terms)
	p.svc.LaunchSearch(p.ctx, domain.SearchTerms(terms), timestamp)
	return nil
}
