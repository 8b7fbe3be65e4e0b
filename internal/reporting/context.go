package reporting

import (
	"context"
	"maps"
	"strconv"
	"time"

	"github.com/Amund211/dotaprofile/internal/domain"
)

type metaContextKey struct{}

type ReportingMeta struct {
	tags   map[string]string
	extras map[string]string

	// Set when the report concerns a single account
	accountID *domain.AccountID

	startedAt time.Time
}

func MetaFromContext(ctx context.Context) ReportingMeta {
	meta, ok := ctx.Value(metaContextKey{}).(ReportingMeta)
	if !ok {
		return ReportingMeta{
			tags:   map[string]string{},
			extras: map[string]string{},
		}
	}

	meta.tags = maps.Clone(meta.tags)
	meta.extras = maps.Clone(meta.extras)
	return meta
}

func withMeta(ctx context.Context, update func(meta *ReportingMeta)) context.Context {
	meta := MetaFromContext(ctx)
	update(&meta)
	return context.WithValue(ctx, metaContextKey{}, meta)
}

func AddExtrasToContext(ctx context.Context, extras map[string]string) context.Context {
	return withMeta(ctx, func(meta *ReportingMeta) {
		maps.Copy(meta.extras, extras)
	})
}

func AddTagsToContext(ctx context.Context, tags map[string]string) context.Context {
	return withMeta(ctx, func(meta *ReportingMeta) {
		maps.Copy(meta.tags, tags)
	})
}

// SetAccountInContext attributes reports to the account. The steam id is used as the sentry user.
func SetAccountInContext(ctx context.Context, accountID domain.AccountID) context.Context {
	return withMeta(ctx, func(meta *ReportingMeta) {
		meta.accountID = &accountID
	})
}

func setStartedAtInContext(ctx context.Context, startedAt time.Time) context.Context {
	return withMeta(ctx, func(meta *ReportingMeta) {
		meta.startedAt = startedAt
	})
}

func (m ReportingMeta) Tags() map[string]string {
	return maps.Clone(m.tags)
}

func (m ReportingMeta) Extras() map[string]string {
	return maps.Clone(m.extras)
}

func (m ReportingMeta) AccountID() (domain.AccountID, bool) {
	if m.accountID == nil {
		return 0, false
	}
	return *m.accountID, true
}

func (m ReportingMeta) StartedAt() time.Time {
	return m.startedAt
}

func (m ReportingMeta) steamUserID() string {
	if m.accountID == nil {
		return ""
	}
	return strconv.FormatUint(m.accountID.SteamID64(), 10)
}
