package domain

import "github.com/shopspring/decimal"

// ListingPatch lists the fields a vendor may change after creation. Nil
// fields are left untouched.
type ListingPatch struct {
	Name         *string
	Ingredients  *[]string
	Instructions *[]string
	Calories     *float64
	Image        *string
	Price        *decimal.Decimal
	SubmittedBy  *string
}

// IsEmpty reports whether the patch carries no changes.
func (p ListingPatch) IsEmpty() bool {
	return p.Name == nil && p.Ingredients == nil && p.Instructions == nil &&
		p.Calories == nil && p.Image == nil && p.Price == nil && p.SubmittedBy == nil
}

// ApplyPatch merges the patch over the listing. The listing is left unchanged
// when any field is rejected.
func (l *Listing) ApplyPatch(patch ListingPatch) error {
	next := l.Clone()
	if patch.Name != nil {
		if err := next.Rename(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Ingredients != nil {
		if err := next.ReplaceIngredients(*patch.Ingredients); err != nil {
			return err
		}
	}
	if patch.Instructions != nil {
		if err := next.ReplaceInstructions(*patch.Instructions); err != nil {
			return err
		}
	}
	if patch.Calories != nil {
		if err := next.UpdateCalories(*patch.Calories); err != nil {
			return err
		}
	}
	if patch.Image != nil {
		if err := next.UpdateImage(*patch.Image); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := next.Reprice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.SubmittedBy != nil {
		next.AssignOwner(*patch.SubmittedBy)
	}
	*l = *next
	return nil
}
