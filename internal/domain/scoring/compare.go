package scoring

// CategoryDiff is one category's score seen by two raters side by side.
// Difference is other minus self: positive means the other rater scored
// higher.
type CategoryDiff struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	SelfScore    float64 `json:"selfScore"`
	OtherScore   float64 `json:"otherScore"`
	Difference   float64 `json:"difference"`
}

type ItemDiff struct {
	ItemID     string  `json:"itemId"`
	ItemName   string  `json:"itemName"`
	SelfScore  float64 `json:"selfScore"`
	OtherScore float64 `json:"otherScore"`
	Difference float64 `json:"difference"`
}

// CategoryItemDiffs groups one category's item-level differences.
type CategoryItemDiffs struct {
	CategoryID   string     `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Items        []ItemDiff `json:"items"`
}

// CategoryDiffs compares two raters' submissions per category. The union of
// categories scored by either side appears; the side that has not scored a
// category reads as 0 so review screens can flag the gap instead of hiding
// it. Output follows template category order.
func CategoryDiffs(self, other []DetailedScore, t Template) []CategoryDiff {
	diffs := make([]CategoryDiff, 0, len(t.Categories))
	for _, category := range t.Categories {
		selfScored, selfOK := findScore(self, category.ID)
		otherScored, otherOK := findScore(other, category.ID)
		if !selfOK && !otherOK {
			continue
		}

		selfScore := 0.0
		if selfOK {
			selfScore = categoryScoreOf(selfScored, category)
		}
		otherScore := 0.0
		if otherOK {
			otherScore = categoryScoreOf(otherScored, category)
		}

		diffs = append(diffs, CategoryDiff{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			SelfScore:    selfScore,
			OtherScore:   otherScore,
			Difference:   otherScore - selfScore,
		})
	}
	return diffs
}

// ItemDiffs compares two raters' submissions item by item, with the same
// union-and-default-to-zero policy as CategoryDiffs.
func ItemDiffs(self, other []DetailedScore, t Template) []CategoryItemDiffs {
	diffs := make([]CategoryItemDiffs, 0, len(t.Categories))
	for _, category := range t.Categories {
		selfScored, selfOK := findScore(self, category.ID)
		otherScored, otherOK := findScore(other, category.ID)
		if !selfOK && !otherOK {
			continue
		}

		items := make([]ItemDiff, 0, len(category.Items))
		for _, item := range category.Items {
			selfItem, selfHas := findScoreItem(selfScored.Items, item.ID)
			otherItem, otherHas := findScoreItem(otherScored.Items, item.ID)
			if !selfHas && !otherHas {
				continue
			}

			selfScore := 0.0
			if selfHas {
				selfScore = selfItem.Score
			}
			otherScore := 0.0
			if otherHas {
				otherScore = otherItem.Score
			}

			items = append(items, ItemDiff{
				ItemID:     item.ID,
				ItemName:   item.Name,
				SelfScore:  selfScore,
				OtherScore: otherScore,
				Difference: otherScore - selfScore,
			})
		}

		diffs = append(diffs, CategoryItemDiffs{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Items:        items,
		})
	}
	return diffs
}

func findScore(scores []DetailedScore, categoryID string) (DetailedScore, bool) {
	for _, scored := range scores {
		if scored.CategoryID == categoryID {
			return scored, true
		}
	}
	return DetailedScore{}, false
}

func findScoreItem(items []DetailedScoreItem, itemID string) (DetailedScoreItem, bool) {
	for _, item := range items {
		if item.ItemID == itemID {
			return item, true
		}
	}
	return DetailedScoreItem{}, false
}
