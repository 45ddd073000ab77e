package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/model"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/ocr"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/testutil"
)

func screenshotFragments() []ocr.TextFragment {
	return []ocr.TextFragment{
		{Text: "我的持仓", MinX: 0.30, MaxX: 0.60, MidY: 0.95},
		{Text: "博时黄金ETF联接A", MinX: 0.05, MaxX: 0.40, MidY: 0.80},
		{Text: "1,649.77", MinX: 0.45, MaxX: 0.60, MidY: 0.803},
		{Text: "+255.22", MinX: 0.70, MaxX: 0.90, MidY: 0.795},
		{Text: "国泰黄金ETF联接C", MinX: 0.05, MaxX: 0.40, MidY: 0.70},
		{Text: "8,957.61", MinX: 0.45, MaxX: 0.60, MidY: 0.701},
		{Text: "+2,695.65", MinX: 0.70, MaxX: 0.90, MidY: 0.699},
	}
}

func byCode(records []model.HoldingRecord) map[string]model.HoldingRecord {
	out := make(map[string]model.HoldingRecord, len(records))
	for _, r := range records {
		out[r.Code] = r
	}
	return out
}

func TestHoldingService_FromFragments(t *testing.T) {
	t.Run("extracts and valuates screenshot rows", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestHoldingService(t, client, nil)

		resp, err := svc.FromFragments(context.Background(), screenshotFragments())
		if err != nil {
			t.Fatalf("FromFragments() returned unexpected error: %v", err)
		}

		if len(resp.Lines) != 3 {
			t.Errorf("Expected 3 recognized lines, got %q", resp.Lines)
		}
		if len(resp.Data) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(resp.Data))
		}

		if resp.Data[0].Code != "004253" || resp.Data[1].Code != "002610" {
			t.Errorf("Expected [004253, 002610] by amount, got [%s, %s]", resp.Data[0].Code, resp.Data[1].Code)
		}
		if resp.Data[0].HoldingAmount != 8957.61 || resp.Data[0].HoldProfit != 2695.65 {
			t.Errorf("Unexpected monetary fields: %+v", resp.Data[0])
		}

		if resp.Summary.Count != 2 || resp.Summary.Valuated != 2 {
			t.Errorf("Expected summary of 2 valuated records, got %+v", resp.Summary)
		}
		if resp.Summary.TotalAmount != 10607.38 {
			t.Errorf("Expected total amount 10607.38, got %v", resp.Summary.TotalAmount)
		}
	})

	t.Run("returns no records when nothing is recognized", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestHoldingService(t, client, nil)

		resp, err := svc.FromFragments(context.Background(), nil)
		if err != nil {
			t.Fatalf("FromFragments() returned unexpected error: %v", err)
		}
		if len(resp.Data) != 0 {
			t.Errorf("Expected no records, got %d", len(resp.Data))
		}
		if resp.Summary.Count != 0 {
			t.Errorf("Expected empty summary, got %+v", resp.Summary)
		}
	})
}

func TestHoldingService_FromImage(t *testing.T) {
	t.Run("wraps recognizer failure", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestHoldingService(t, client, nil)

		recognizer := ocr.RecognizerFunc(func(context.Context, []byte) ([]ocr.TextFragment, error) {
			return nil, errors.New("unsupported image format")
		})

		_, err := svc.FromImage(context.Background(), recognizer, []byte("not an image"))
		if !errors.Is(err, apperrors.ErrRecognitionFailure) {
			t.Fatalf("Expected ErrRecognitionFailure, got %v", err)
		}
		if !strings.Contains(err.Error(), "unsupported image format") {
			t.Errorf("Expected cause in error message, got %q", err.Error())
		}
		if client.TotalQueryCount() != 0 {
			t.Errorf("Expected no quote queries, got %d", client.TotalQueryCount())
		}
	})

	t.Run("runs the pipeline on recognized fragments", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestHoldingService(t, client, nil)

		recognizer := ocr.RecognizerFunc(func(context.Context, []byte) ([]ocr.TextFragment, error) {
			return screenshotFragments(), nil
		})

		resp, err := svc.FromImage(context.Background(), recognizer, []byte{0x89, 0x50})
		if err != nil {
			t.Fatalf("FromImage() returned unexpected error: %v", err)
		}
		if len(resp.Data) != 2 {
			t.Errorf("Expected 2 records, got %d", len(resp.Data))
		}
	})
}

func TestHoldingService_FromText(t *testing.T) {
	t.Run("resolves codes, registry names and searched names", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		searcher := testutil.NewMockSearcher().WithFund("未知基金", "000001", "未知基金A")
		svc := testutil.NewTestHoldingService(t, client, searcher)

		text := "163406 5000\n博时黄金ETF联接A：1200.50元\nrandom words\n未知基金 300\n"

		resp, err := svc.FromText(context.Background(), text)
		if err != nil {
			t.Fatalf("FromText() returned unexpected error: %v", err)
		}

		records := byCode(resp.Data)
		if len(records) != 3 {
			t.Fatalf("Expected 3 records, got %+v", resp.Data)
		}

		if r := records["163406"]; r.Name != "兴全合润混合A" || r.HoldingAmount != 5000 {
			t.Errorf("Unexpected record for 163406: %+v", r)
		}
		if r := records["002610"]; r.HoldingAmount != 1200.5 {
			t.Errorf("Unexpected record for 002610: %+v", r)
		}
		if r := records["000001"]; r.Name != "未知基金A" || r.HoldingAmount != 300 {
			t.Errorf("Unexpected record for 000001: %+v", r)
		}
		if resp.Data[0].Code != "163406" {
			t.Errorf("Expected largest holding first, got %s", resp.Data[0].Code)
		}
	})

	t.Run("empty text yields no records", func(t *testing.T) {
		client := testutil.NewMockTHSClient()
		svc := testutil.NewTestHoldingService(t, client, nil)

		resp, err := svc.FromText(context.Background(), "\n\n")
		if err != nil {
			t.Fatalf("FromText() returned unexpected error: %v", err)
		}
		if len(resp.Data) != 0 {
			t.Errorf("Expected no records, got %d", len(resp.Data))
		}
	})
}

func TestHoldingService_Refresh(t *testing.T) {
	client := testutil.NewMockTHSClient().WithQuote("163406", 2.0, 2.02)
	svc := testutil.NewTestHoldingService(t, client, nil)

	holdings := []model.HoldingRecord{
		testutil.NewHolding("163406").WithAmount(2000).WithHoldProfit(150).Draft(),
	}

	resp, err := svc.Refresh(context.Background(), holdings)
	if err != nil {
		t.Fatalf("Refresh() returned unexpected error: %v", err)
	}

	if len(resp.Lines) != 0 {
		t.Errorf("Expected no lines for a refresh, got %q", resp.Lines)
	}
	r := resp.Data[0]
	if !approxEqual(r.RealtimeProfit, 20) {
		t.Errorf("Expected profit 20, got %v", r.RealtimeProfit)
	}
	if r.HoldProfit != 150 {
		t.Errorf("Expected hold profit to be preserved, got %v", r.HoldProfit)
	}
	if resp.Summary.TotalRealtimeProfit != 20 {
		t.Errorf("Expected total realtime profit 20, got %v", resp.Summary.TotalRealtimeProfit)
	}
}
