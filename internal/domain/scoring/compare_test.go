package scoring

import "testing"

func compareTemplate() Template {
	return Template{
		Categories: []Category{
			{ID: "c1", Name: "Work Performance", Weight: 60, Items: []Item{
				{ID: "i1", Name: "Delivery", Weight: 50, MaxScore: 100},
				{ID: "i2", Name: "Quality", Weight: 50, MaxScore: 100},
			}},
			{ID: "c2", Name: "Attitude", Weight: 40, Items: []Item{
				{ID: "i3", Name: "Ownership", Weight: 100, MaxScore: 100},
			}},
		},
	}
}

func TestCategoryDiffsSignConvention(t *testing.T) {
	template := compareTemplate()
	self := []DetailedScore{
		{CategoryID: "c1", Items: []DetailedScoreItem{{ItemID: "i1", Score: 80}, {ItemID: "i2", Score: 80}}},
	}
	leader := []DetailedScore{
		{CategoryID: "c1", Items: []DetailedScoreItem{{ItemID: "i1", Score: 90}, {ItemID: "i2", Score: 90}}},
	}

	diffs := CategoryDiffs(self, leader, template)
	if len(diffs) != 1 {
		t.Fatalf("expected 1 diff, got %d", len(diffs))
	}
	if !almostEqual(diffs[0].Difference, 10) {
		t.Fatalf("expected +10 when other rater scores higher, got %v", diffs[0].Difference)
	}
	if diffs[0].CategoryName != "Work Performance" {
		t.Fatalf("expected category name resolved, got %q", diffs[0].CategoryName)
	}
}

func TestCategoryDiffsSymmetry(t *testing.T) {
	template := compareTemplate()
	a := []DetailedScore{
		{CategoryID: "c1", Items: []DetailedScoreItem{{ItemID: "i1", Score: 75}, {ItemID: "i2", Score: 85}}},
		{CategoryID: "c2", Items: []DetailedScoreItem{{ItemID: "i3", Score: 60}}},
	}
	b := []DetailedScore{
		{CategoryID: "c1", Items: []DetailedScoreItem{{ItemID: "i1", Score: 95}, {ItemID: "i2", Score: 65}}},
		{CategoryID: "c2", Items: []DetailedScoreItem{{ItemID: "i3", Score: 90}}},
	}

	forward := CategoryDiffs(a, b, template)
	backward := CategoryDiffs(b, a, template)
	if len(forward) != len(backward) {
		t.Fatalf("expected symmetric diff counts, got %d and %d", len(forward), len(backward))
	}
	for i := range forward {
		if !almostEqual(forward[i].Difference, -backward[i].Difference) {
			t.Fatalf("category %s: %v != -%v", forward[i].CategoryID, forward[i].Difference, backward[i].Difference)
		}
	}
}

func TestCategoryDiffsUnionDefaultsMissingSideToZero(t *testing.T) {
	template := compareTemplate()
	self := []DetailedScore{
		{CategoryID: "c2", Items: []DetailedScoreItem{{ItemID: "i3", Score: 70}}},
	}

	diffs := CategoryDiffs(self, nil, template)
	if len(diffs) != 1 {
		t.Fatalf("expected category scored by one side to appear, got %d diffs", len(diffs))
	}
	if !almostEqual(diffs[0].SelfScore, 70) || diffs[0].OtherScore != 0 {
		t.Fatalf("expected missing side defaulted to 0, got %+v", diffs[0])
	}
	if !almostEqual(diffs[0].Difference, -70) {
		t.Fatalf("expected difference -70, got %v", diffs[0].Difference)
	}
}

func TestItemDiffs(t *testing.T) {
	template := compareTemplate()
	self := []DetailedScore{
		{CategoryID: "c1", Items: []DetailedScoreItem{{ItemID: "i1", Score: 80}}},
	}
	leader := []DetailedScore{
		{CategoryID: "c1", Items: []DetailedScoreItem{{ItemID: "i1", Score: 95}, {ItemID: "i2", Score: 60}}},
	}

	diffs := ItemDiffs(self, leader, template)
	if len(diffs) != 1 {
		t.Fatalf("expected 1 category group, got %d", len(diffs))
	}
	items := diffs[0].Items
	if len(items) != 2 {
		t.Fatalf("expected union of 2 items, got %d", len(items))
	}
	if !almostEqual(items[0].Difference, 15) {
		t.Fatalf("expected i1 difference 15, got %v", items[0].Difference)
	}
	if items[1].SelfScore != 0 || !almostEqual(items[1].OtherScore, 60) {
		t.Fatalf("expected unscored side defaulted to 0, got %+v", items[1])
	}
}
