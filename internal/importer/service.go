// Package importer runs roster reconciliations for the web and CLI fronts.
//
// It owns everything around the pure roster engine: input decoding, member
// snapshot loading, concurrency limits, the per-draft result store and the
// import log.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/roster/internal/config"
	"github.com/JonMunkholm/roster/internal/directory"
	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/JonMunkholm/roster/internal/roster"
	"github.com/google/uuid"
)

var (
	// ErrFileTooLarge is returned when an upload exceeds the configured size.
	ErrFileTooLarge = errors.New("file too large")

	// ErrDraftNotFound is returned when a draft holds no reconciliation result.
	ErrDraftNotFound = errors.New("draft not found")
)

// Request is one roster file to reconcile.
type Request struct {
	OrgID    int64
	DraftID  string // Optional event draft the result belongs to
	FileName string
	Data     []byte
}

// Result is a completed reconciliation.
type Result struct {
	ImportID    string                `json:"importId"`
	OrgID       int64                 `json:"orgId"`
	DraftID     string                `json:"draftId,omitempty"`
	FileName    string                `json:"fileName,omitempty"`
	Encoding    string                `json:"encoding"`
	Members     int                   `json:"members"` // Snapshot size
	Summary     *roster.ImportSummary `json:"summary"`
	Duration    time.Duration         `json:"-"`
	CompletedAt time.Time             `json:"completedAt"`
}

// Service provides roster import operations.
type Service struct {
	source     directory.Source
	recorder   directory.ImportRecorder
	limiter    *Limiter
	drafts     *Drafts
	reconciler roster.Reconciler
	cfg        config.ImportConfig
}

// NewService creates a Service. recorder may be nil to skip the import log.
func NewService(source directory.Source, recorder directory.ImportRecorder, cfg config.ImportConfig) *Service {
	return &Service{
		source:   source,
		recorder: recorder,
		limiter:  NewLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		drafts:   NewDrafts(),
		cfg:      cfg,
	}
}

// Reconcile decodes req.Data, loads the organization's member snapshot and
// reconciles the roster against it. When req.DraftID is set, the result
// replaces the draft's previous one; a terminal import error clears it.
func (s *Service) Reconcile(ctx context.Context, req Request) (*Result, error) {
	if s.cfg.MaxFileSize > 0 && int64(len(req.Data)) > s.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(req.Data), s.cfg.MaxFileSize)
	}

	ticket := s.drafts.Ticket()

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	importID := uuid.NewString()
	logger := logging.WithFields(ctx,
		"import_id", importID,
		"org_id", req.OrgID,
		"file", req.FileName,
	)
	start := time.Now()

	text, encoding, err := DecodeText(req.Data)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.source.Snapshot(ctx, req.OrgID)
	if err != nil {
		logger.Error("load member snapshot failed", "error", err)
		return nil, fmt.Errorf("load member snapshot: %w", err)
	}

	summary, err := s.reconciler.Reconcile(text, snapshot)
	if err != nil {
		code := MapError(err).Code
		logger.Warn("roster import rejected", "error", err, "code", code)
		if req.DraftID != "" {
			s.drafts.Put(req.DraftID, ticket, nil)
		}
		s.record(ctx, directory.ImportRecord{
			ImportID:  importID,
			OrgID:     req.OrgID,
			DraftID:   req.DraftID,
			FileName:  req.FileName,
			ErrorCode: code,
			Duration:  time.Since(start),
		})
		return nil, fmt.Errorf("reconcile %s: %w", req.FileName, err)
	}

	result := &Result{
		ImportID:    importID,
		OrgID:       req.OrgID,
		DraftID:     req.DraftID,
		FileName:    req.FileName,
		Encoding:    encoding,
		Members:     len(snapshot),
		Summary:     summary,
		Duration:    time.Since(start),
		CompletedAt: time.Now(),
	}

	logger.Info("roster reconciled",
		"encoding", encoding,
		"rows", summary.RowCount(),
		"matched", len(summary.MatchedMemberIDs),
		"new", len(summary.NewCandidates),
		"rejected", len(summary.RejectedRows),
		"duration_ms", result.Duration.Milliseconds(),
	)

	s.record(ctx, directory.ImportRecord{
		ImportID: importID,
		OrgID:    req.OrgID,
		DraftID:  req.DraftID,
		FileName: req.FileName,
		Rows:     summary.RowCount(),
		Matched:  len(summary.MatchedMemberIDs),
		New:      len(summary.NewCandidates),
		Rejected: len(summary.RejectedRows),
		Duration: result.Duration,
	})

	if req.DraftID != "" && !s.drafts.Put(req.DraftID, ticket, result) {
		logger.Info("stale roster result discarded", "draft_id", req.DraftID)
	}

	return result, nil
}

// record writes the import log. Failures are logged, not returned: the
// reconciliation itself already succeeded or failed on its own terms.
func (s *Service) record(ctx context.Context, rec directory.ImportRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordImport(ctx, rec); err != nil {
		logging.FromContext(ctx).Warn("record roster import failed",
			"import_id", rec.ImportID,
			"error", err,
		)
	}
}

// DraftResult returns the latest result stored for a draft.
func (s *Service) DraftResult(draftID string) (*Result, bool) {
	return s.drafts.Get(draftID)
}

// DiscardDraft forgets a draft's result.
func (s *Service) DiscardDraft(draftID string) bool {
	return s.drafts.Discard(draftID)
}

// StartDraftSweeper expires idle drafts until ctx is cancelled.
func (s *Service) StartDraftSweeper(ctx context.Context) {
	s.drafts.StartSweeper(ctx, s.cfg.DraftSweepInterval, s.cfg.DraftTTL)
}

// LimiterStatus returns the import limiter's current state.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until in-flight imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
