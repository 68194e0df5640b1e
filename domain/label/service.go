// Package label implements the label generation pipeline for MaintainX parts
// and locations: parse the resource URL, fetch the record, encode its code
// value, compose the PDF document and rasterize a preview.
package label

import (
	"context"
	"time"

	"github.com/prasetyowira/mxlabel/constant"
	"github.com/prasetyowira/mxlabel/infrastructure/logger"
	"github.com/prasetyowira/mxlabel/infrastructure/render"
)

// Fetcher retrieves one upstream record for a parsed resource reference.
type Fetcher interface {
	FetchRecord(ctx context.Context, ref ResourceReference) (Record, error)
}

// CodeGenerator renders a code value as an in-memory PNG image.
type CodeGenerator interface {
	QRCode(value string) ([]byte, error)
	Code128(value string) ([]byte, error)
}

// Renderer composes label documents and rasterizes previews.
type Renderer interface {
	Compose(t render.Template, name string, codePNG []byte) (*render.Document, error)
	Preview(doc *render.Document) ([]byte, error)
}

// Journal persists label generation events. Entries are handed over
// best-effort: a journal failure never fails a generation.
type Journal interface {
	Record(ctx context.Context, entry *JournalEntry) error
	Recent(ctx context.Context, limit int) ([]JournalEntry, error)
}

// Service runs the label generation pipeline. Each request is an independent
// transform; no state is shared between invocations and no stage retries.
type Service struct {
	fetcher Fetcher
	codes   CodeGenerator
	render  Renderer
	journal Journal // nil when journaling is disabled
}

// NewService creates a new label service. journal may be nil to disable
// generation journaling.
func NewService(fetcher Fetcher, codes CodeGenerator, renderer Renderer, journal Journal) *Service {
	ctx := logger.NewRequestContext()
	logger.CtxDebug(ctx, "Creating label service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "label",
		},
	})
	return &Service{
		fetcher: fetcher,
		codes:   codes,
		render:  renderer,
		journal: journal,
	}
}

// GenerateLabel runs the full pipeline for one resource URL. On success the
// label always carries the sealed document and its filename; Preview is nil
// when rasterization failed, the one soft failure in the pipeline.
func (s *Service) GenerateLabel(ctx context.Context, rawURL string, variant Variant) (*Label, error) {
	logger.CtxDebug(ctx, "Generating label", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateLabel,
		Data: map[string]interface{}{
			constant.DataURL:     rawURL,
			constant.DataVariant: string(variant),
		},
	})

	ref, err := ParseResourceURL(rawURL)
	if err != nil {
		logger.CtxWarn(ctx, "Invalid resource URL", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInvalidResourceURL,
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataURL: rawURL,
			},
		})
		return nil, err
	}

	record, err := s.fetcher.FetchRecord(ctx, ref)
	if err != nil {
		logger.CtxError(ctx, "Failed to fetch record", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeFetchFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeUpstream,
			},
			Data: map[string]interface{}{
				constant.DataKind:       string(ref.Kind),
				constant.DataResourceID: ref.ID,
			},
		})
		return nil, err
	}

	var codePNG []byte
	if variant == VariantBarcode {
		codePNG, err = s.codes.Code128(record.CodeValue)
	} else {
		codePNG, err = s.codes.QRCode(record.CodeValue)
	}
	if err != nil {
		logger.CtxError(ctx, "Failed to encode code value", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeSymbologyFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeSymbology,
			},
			Data: map[string]interface{}{
				constant.DataResourceID: ref.ID,
				constant.DataVariant:    string(variant),
			},
		})
		return nil, err
	}

	template := render.TemplateQR
	if variant == VariantBarcode {
		template = render.TemplateBarcode
	}
	doc, err := s.render.Compose(template, record.Name, codePNG)
	if err != nil {
		logger.CtxError(ctx, "Failed to compose label document", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeComposeFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeRender,
			},
			Data: map[string]interface{}{
				constant.DataResourceID: ref.ID,
				constant.DataVariant:    string(variant),
			},
		})
		return nil, err
	}

	preview, err := s.render.Preview(doc)
	if err != nil {
		// The document is still complete and downloadable without a preview.
		logger.CtxWarn(ctx, "Preview rasterization failed", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodePreviewFailure,
				Message: err.Error(),
				Type:    constant.ErrTypePreview,
			},
			Data: map[string]interface{}{
				constant.DataResourceID: ref.ID,
			},
		})
		preview = nil
	}

	filename := BuildFilename(variant, ref, record.Name, doc.Fit.FontSize)

	s.journalEvent(ctx, ref, record, variant, filename, doc.Fit.FontSize)

	logger.CtxInfo(ctx, "Label generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerateLabel,
		Data: map[string]interface{}{
			constant.DataKind:       string(ref.Kind),
			constant.DataResourceID: ref.ID,
			constant.DataVariant:    string(variant),
			constant.DataFilename:   filename,
			constant.DataFontSize:   doc.Fit.FontSize,
			constant.DataFits:       doc.Fit.Fits,
		},
	})

	return &Label{
		Document:    doc,
		Filename:    filename,
		Preview:     preview,
		FontSize:    doc.Fit.FontSize,
		ContentFits: doc.Fit.Fits,
	}, nil
}

// History returns recent generation events, newest first. With journaling
// disabled it returns an empty list.
func (s *Service) History(ctx context.Context, limit int) ([]JournalEntry, error) {
	logger.CtxDebug(ctx, "Loading label history", logger.LoggerInfo{
		ContextFunction: constant.CtxLabelHistory,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
		},
	})

	if s.journal == nil {
		return []JournalEntry{}, nil
	}

	entries, err := s.journal.Recent(ctx, limit)
	if err != nil {
		logger.CtxError(ctx, "Failed to load label history", logger.LoggerInfo{
			ContextFunction: constant.CtxLabelHistory,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeJournalFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeJournal,
			},
			Data: map[string]interface{}{
				constant.DataLimit: limit,
			},
		})
		return nil, err
	}
	return entries, nil
}

// journalEvent records one completed generation best-effort; failures are
// logged and swallowed.
func (s *Service) journalEvent(ctx context.Context, ref ResourceReference, record Record, variant Variant, filename string, fontSize int) {
	if s.journal == nil {
		return
	}

	entry := &JournalEntry{
		Kind:       ref.Kind,
		ResourceID: ref.ID,
		Name:       record.Name,
		Variant:    variant,
		Filename:   filename,
		FontSize:   fontSize,
		CreatedAt:  time.Now(),
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		logger.CtxWarn(ctx, "Failed to journal label generation", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerateLabel,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeJournalFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeJournal,
			},
			Data: map[string]interface{}{
				constant.DataResourceID: ref.ID,
				constant.DataFilename:   filename,
			},
		})
	}
}
