package pagination

import "testing"

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("defaults", func(t *testing.T) {
		got := Paginate(items, PageRequest{})
		if got.Page != 1 || got.PageSize != 20 || len(got.Data) != 5 || got.TotalPages != 1 {
			t.Errorf("unexpected page %+v", got)
		}
	})

	t.Run("middle_page", func(t *testing.T) {
		got := Paginate(items, PageRequest{Page: 2, PageSize: 2})
		if len(got.Data) != 2 || got.Data[0] != 3 || got.TotalItems != 5 || got.TotalPages != 3 {
			t.Errorf("unexpected page %+v", got)
		}
	})

	t.Run("past_end", func(t *testing.T) {
		got := Paginate(items, PageRequest{Page: 9, PageSize: 2})
		if got.Data == nil || len(got.Data) != 0 {
			t.Errorf("expected empty non-nil data, got %+v", got.Data)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got := Paginate([]int(nil), PageRequest{})
		if got.Data == nil || got.TotalPages != 0 {
			t.Errorf("unexpected page %+v", got)
		}
	})
}
