package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/extract"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/ocr"
)

// HoldingService wires the extraction stages to the valuation service.
type HoldingService struct {
	extractor  *extract.Extractor
	textParser *extract.TextParser
	valuation  *ValuationService
}

// NewHoldingService creates a HoldingService from its pipeline stages.
func NewHoldingService(extractor *extract.Extractor, textParser *extract.TextParser, valuation *ValuationService) *HoldingService {
	return &HoldingService{
		extractor:  extractor,
		textParser: textParser,
		valuation:  valuation,
	}
}

// FromImage runs recognition on image and valuates every fund found in it.
// A recognizer failure is the only pipeline-level error besides cancellation
// and is returned wrapping ErrRecognitionFailure.
func (s *HoldingService) FromImage(ctx context.Context, recognizer ocr.Recognizer, image []byte) (model.ValuationResponse, error) {
	fragments, err := recognizer.Recognize(ctx, image)
	if err != nil {
		return model.ValuationResponse{}, fmt.Errorf("%w: %w", apperrors.ErrRecognitionFailure, err)
	}
	return s.FromFragments(ctx, fragments)
}

// FromFragments clusters already recognized fragments into lines, extracts
// draft records from them and valuates the drafts.
func (s *HoldingService) FromFragments(ctx context.Context, fragments []ocr.TextFragment) (model.ValuationResponse, error) {
	lines := ocr.Lines(fragments)
	drafts := s.extractor.Records(lines)

	records, err := s.valuation.Valuate(ctx, drafts)
	if err != nil {
		return model.ValuationResponse{}, err
	}

	return model.ValuationResponse{
		Lines:   lines,
		Data:    records,
		Summary: model.Summarize(records),
	}, nil
}

// FromText resolves pasted "<name-or-code> <amount>" lines and valuates them.
func (s *HoldingService) FromText(ctx context.Context, text string) (model.ValuationResponse, error) {
	drafts, err := s.textParser.Parse(ctx, text)
	if err != nil {
		return model.ValuationResponse{}, err
	}
	return s.Refresh(ctx, drafts)
}

// Refresh valuates an existing list of holdings.
func (s *HoldingService) Refresh(ctx context.Context, holdings []model.HoldingRecord) (model.ValuationResponse, error) {
	records, err := s.valuation.Valuate(ctx, holdings)
	if err != nil {
		return model.ValuationResponse{}, err
	}
	return model.ValuationResponse{
		Data:    records,
		Summary: model.Summarize(records),
	}, nil
}
