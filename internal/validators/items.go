package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cxf/models"
)

// PartitionItems validates every item of acc on its own and splits them into
// the ones that pass and the ones that do not. An item whose id repeats the
// id of an earlier accepted item is rejected with ErrDuplicateItemID.
//
// Rejected items are reported with their position in acc.Items. The input
// account is not modified.
func PartitionItems(ctx context.Context, v Validator, acc models.Account) ([]models.Item, []*models.ItemError) {
	var (
		kept     = make([]models.Item, 0, len(acc.Items))
		rejected []*models.ItemError
		seen     = make(map[string]int, len(acc.Items))
	)

	for i, item := range acc.Items {
		err := v.Validate(ctx, item)
		if err == nil {
			if first, ok := seen[string(item.ID)]; ok {
				err = fmt.Errorf("%w %s (first at items[%d])", ErrDuplicateItemID, item.ID, first)
			}
		}
		if err != nil {
			rejected = append(rejected, &models.ItemError{
				AccountID: acc.ID,
				Index:     i,
				ItemID:    item.ID.String(),
				Err:       err,
			})
			continue
		}

		seen[string(item.ID)] = i
		kept = append(kept, item)
	}

	return kept, rejected
}
