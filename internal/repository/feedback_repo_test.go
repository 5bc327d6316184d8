package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketrate-backend/internal/models"
)

func TestFeedbackCreateDuplicateTriple(t *testing.T) {
	repo := NewFeedbackRepo(testDB(t))
	ctx := context.Background()

	first := &models.Feedback{BuyerID: "b1", ProductID: "p1", SellerID: "s1", Rating: 4, Comment: "good"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected the store to assign an id")
	}

	second := &models.Feedback{BuyerID: "b1", ProductID: "p1", SellerID: "s1", Rating: 1, Comment: "changed my mind"}
	err := repo.Create(ctx, second)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// The rejected write must leave stored data untouched.
	items, err := repo.ScanFeedback(ctx, "", "p1", "", nil)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 record after conflict, got %d", len(items))
	}
	if items[0].Rating != 4 {
		t.Fatalf("stored record changed: %+v", items[0])
	}
}

func TestFeedbackSameBuyerDifferentSeller(t *testing.T) {
	repo := NewFeedbackRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Feedback{BuyerID: "b1", ProductID: "p1", SellerID: "s1", Rating: 3}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, &models.Feedback{BuyerID: "b1", ProductID: "p1", SellerID: "s2", Rating: 3}); err != nil {
		t.Fatalf("uniqueness is per triple, create failed: %v", err)
	}
}

func TestFeedbackScanFilters(t *testing.T) {
	repo := NewFeedbackRepo(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	records := []models.Feedback{
		{BuyerID: "b1", ProductID: "p1", SellerID: "s1", Rating: 2, CreatedAt: now.Add(-10 * 24 * time.Hour)},
		{BuyerID: "b2", ProductID: "p1", SellerID: "s1", Rating: 3, CreatedAt: now.Add(-90 * 24 * time.Hour)},
		{BuyerID: "b3", ProductID: "p1", SellerID: "s2", Rating: 5, CreatedAt: now.Add(-1 * time.Hour)},
		{BuyerID: "b4", ProductID: "p2", SellerID: "s1", Rating: 1, CreatedAt: now.Add(-1 * time.Hour)},
	}
	for i := range records {
		if err := repo.Create(ctx, &records[i]); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, err := repo.ScanFeedback(ctx, "", "p1", "s1", nil)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 records for (p1, s1), got %d", len(items))
	}

	since := now.Add(-60 * 24 * time.Hour)
	items, err = repo.ScanFeedback(ctx, "", "p1", "s1", &since)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(items) != 1 || items[0].BuyerID != "b1" {
		t.Fatalf("expected only the recent (p1, s1) record, got %+v", items)
	}

	items, err = repo.ScanFeedback(ctx, "b4", "", "", nil)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected b4's record, got %+v", items)
	}
}

func TestFeedbackListNewestFirstPaginated(t *testing.T) {
	repo := NewFeedbackRepo(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	buyers := []string{"b1", "b2", "b3", "b4", "b5"}
	for i, b := range buyers {
		fb := &models.Feedback{
			BuyerID:   b,
			ProductID: "p1",
			SellerID:  "s1",
			Rating:    3,
			CreatedAt: now.Add(time.Duration(-i) * time.Hour),
		}
		if err := repo.Create(ctx, fb); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	page1, err := repo.List(ctx, "", "p1", "", 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page1) != 2 || page1[0].BuyerID != "b1" || page1[1].BuyerID != "b2" {
		t.Fatalf("unexpected first page: %+v", page1)
	}

	page2, err := repo.List(ctx, "", "p1", "", 2, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page2) != 2 || page2[0].BuyerID != "b3" {
		t.Fatalf("unexpected second page: %+v", page2)
	}

	all, err := repo.List(ctx, "", "p1", "", 1, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected unpaginated list of 5, got %d", len(all))
	}
}
