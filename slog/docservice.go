package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/krpcdocs"
)

// Ensure LoggingDocService implements krpcdocs.DocService.
var _ krpcdocs.DocService = (*LoggingDocService)(nil)

// LoggingDocService wraps a DocService with per-operation logging.
type LoggingDocService struct {
	next   krpcdocs.DocService
	logger *slog.Logger
}

// NewLoggingDocService creates a new LoggingDocService.
func NewLoggingDocService(next krpcdocs.DocService, logger *slog.Logger) *LoggingDocService {
	return &LoggingDocService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the outcome.
func (s *LoggingDocService) Search(ctx context.Context, query string, limit int) (*krpcdocs.SearchResult, error) {
	begin := time.Now()
	res, err := s.next.Search(ctx, query, limit)
	if err != nil {
		s.logger.Error("search",
			"query", query,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("search",
		"query", query,
		"results", len(res.Results),
		"duration", time.Since(begin),
	)
	return res, nil
}

// Page delegates to the wrapped service and logs the outcome. Lookup misses
// are logged at info level; they are part of normal operation.
func (s *LoggingDocService) Page(ctx context.Context, slugOrURL string) (*krpcdocs.PageDetail, error) {
	begin := time.Now()
	page, err := s.next.Page(ctx, slugOrURL)
	if err != nil {
		if krpcdocs.ErrorCode(err) == krpcdocs.ENOTFOUND {
			s.logger.Info("page miss", "page", slugOrURL, "duration", time.Since(begin))
		} else {
			s.logger.Error("page", "page", slugOrURL, "duration", time.Since(begin), "err", err)
		}
		return nil, err
	}
	s.logger.Info("page",
		"page", slugOrURL,
		"bytes", len(page.Content),
		"duration", time.Since(begin),
	)
	return page, nil
}

// Member delegates to the wrapped service and logs the outcome.
func (s *LoggingDocService) Member(ctx context.Context, service, class, member string) (*krpcdocs.MemberResult, error) {
	begin := time.Now()
	res, err := s.next.Member(ctx, service, class, member)
	if err != nil {
		if krpcdocs.ErrorCode(err) == krpcdocs.ENOTFOUND {
			s.logger.Info("member miss",
				"service", service, "class", class, "member", member,
				"duration", time.Since(begin),
			)
		} else {
			s.logger.Error("member",
				"service", service, "class", class, "member", member,
				"duration", time.Since(begin),
				"err", err,
			)
		}
		return nil, err
	}
	s.logger.Info("member",
		"service", service, "class", class, "member", member,
		"best", res.BestMatch.ID,
		"alternatives", len(res.Alternatives),
		"duration", time.Since(begin),
	)
	return res, nil
}

// Reindex delegates to the wrapped service and logs the outcome.
func (s *LoggingDocService) Reindex(ctx context.Context, force bool) (*krpcdocs.ReindexResult, error) {
	begin := time.Now()
	res, err := s.next.Reindex(ctx, force)
	if err != nil {
		s.logger.Error("reindex",
			"force", force,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("reindex",
		"force", force,
		"pages", res.Pages,
		"members", res.Members,
		"duration", time.Since(begin),
	)
	return res, nil
}
