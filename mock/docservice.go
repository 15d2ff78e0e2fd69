package mock

import (
	"context"

	"github.com/fwojciec/krpcdocs"
)

var _ krpcdocs.DocService = (*DocService)(nil)

// DocService is a mock implementation of krpcdocs.DocService.
type DocService struct {
	SearchFn  func(ctx context.Context, query string, limit int) (*krpcdocs.SearchResult, error)
	PageFn    func(ctx context.Context, slugOrURL string) (*krpcdocs.PageDetail, error)
	MemberFn  func(ctx context.Context, service, class, member string) (*krpcdocs.MemberResult, error)
	ReindexFn func(ctx context.Context, force bool) (*krpcdocs.ReindexResult, error)
}

func (s *DocService) Search(ctx context.Context, query string, limit int) (*krpcdocs.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}

func (s *DocService) Page(ctx context.Context, slugOrURL string) (*krpcdocs.PageDetail, error) {
	return s.PageFn(ctx, slugOrURL)
}

func (s *DocService) Member(ctx context.Context, service, class, member string) (*krpcdocs.MemberResult, error) {
	return s.MemberFn(ctx, service, class, member)
}

func (s *DocService) Reindex(ctx context.Context, force bool) (*krpcdocs.ReindexResult, error) {
	return s.ReindexFn(ctx, force)
}
