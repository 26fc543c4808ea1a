package handler

import (
	"testing"

	"github.com/sporttrack/sporttrack/internal/model"
)

func TestLinesFromMergesDuplicates(t *testing.T) {
	catalog := []model.Item{{ID: "i1", Name: "Football", Quantity: 10}}

	lines := linesFrom([]lineReq{
		{ItemID: "i1", Quantity: 2},
		{ItemID: "i1", Quantity: 3},
	}, catalog)

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("merged quantity = %d, want 5", lines[0].Quantity)
	}
}

func TestLinesFromSnapshotsCatalogName(t *testing.T) {
	catalog := []model.Item{{ID: "i1", Name: "Football", Quantity: 10}}

	lines := linesFrom([]lineReq{{ItemID: "i1", ItemName: "stale name", Quantity: 1}}, catalog)

	if lines[0].ItemName != "Football" {
		t.Fatalf("snapshot name = %q, want catalog name", lines[0].ItemName)
	}
}

func TestLinesFromKeepsUnknownItems(t *testing.T) {
	lines := linesFrom([]lineReq{
		{ItemID: "ghost", ItemName: "Old Hurdle", Quantity: 1},
		{ItemID: "gone", Quantity: 2},
	}, nil)

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].ItemName != "Old Hurdle" {
		t.Fatalf("unknown item lost its client name: %q", lines[0].ItemName)
	}
	if lines[1].ItemName != "gone" {
		t.Fatalf("nameless unknown item should fall back to its id, got %q", lines[1].ItemName)
	}
}

func TestVisible(t *testing.T) {
	res := model.Reservation{CoachID: "c1"}
	if !visible(res, "admin", model.RoleAdmin) {
		t.Fatal("admin should see every club reservation")
	}
	if !visible(res, "c1", model.RoleCoach) {
		t.Fatal("coach should see their own reservation")
	}
	if visible(res, "c2", model.RoleCoach) {
		t.Fatal("coach should not see another coach's reservation")
	}
}
