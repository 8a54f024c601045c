package services

import (
	"context"
	"testing"

	"walletledger/internal/models"
	"walletledger/internal/testutil"
)

func TestCategoryDefaults(t *testing.T) {
	svc := NewCategoryService(testutil.NewMemoryStateStore())

	if n := len(svc.ListCategories()); n != 14 {
		t.Fatalf("expected 14 default categories, got %d", n)
	}
	if n := len(svc.ListByType(models.CategoryTypeIncome)); n != 5 {
		t.Errorf("expected 5 income categories, got %d", n)
	}
	if n := len(svc.ListByType(models.CategoryTypeExpense)); n != 9 {
		t.Errorf("expected 9 expense categories, got %d", n)
	}
	c, err := svc.GetCategory("expense-food")
	testutil.AssertNoError(t, err)
	if c.Name != "Food & Dining" {
		t.Errorf("unexpected category %+v", c)
	}
}

func TestAddCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := NewCategoryService(testutil.NewMemoryStateStore())
		c, err := svc.AddCategory(CategoryInput{Name: "Pets", Type: models.CategoryTypeExpense, Icon: "Dog", Color: "#123456", IsFrequent: true})
		testutil.AssertNoError(t, err)

		all := svc.ListCategories()
		if all[len(all)-1].ID != c.ID {
			t.Error("expected new category appended")
		}
		frequent := svc.Frequent(models.CategoryTypeExpense)
		if len(frequent) != 1 || frequent[0].ID != c.ID {
			t.Errorf("expected Pets as the only frequent expense category, got %+v", frequent)
		}
		if len(svc.Frequent(models.CategoryTypeIncome)) != 0 {
			t.Error("expected no frequent income categories")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		svc := NewCategoryService(testutil.NewMemoryStateStore())
		_, err := svc.AddCategory(CategoryInput{Name: "", Type: models.CategoryTypeExpense})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		svc := NewCategoryService(testutil.NewMemoryStateStore())
		_, err := svc.AddCategory(CategoryInput{Name: "X", Type: "transfer"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateCategory(t *testing.T) {
	svc := NewCategoryService(testutil.NewMemoryStateStore())

	frequent := true
	c, found, err := svc.UpdateCategory("expense-food", CategoryUpdate{Name: strPtr("Food"), IsFrequent: &frequent})
	testutil.AssertNoError(t, err)
	if !found || c.Name != "Food" || !c.IsFrequent || c.Color != "#FF7675" {
		t.Errorf("unexpected update result found=%v %+v", found, c)
	}

	_, found, err = svc.UpdateCategory("missing", CategoryUpdate{Name: strPtr("x")})
	testutil.AssertNoError(t, err)
	if found {
		t.Error("expected unknown id to be a no-op")
	}

	bad := models.CategoryType("other")
	_, _, err = svc.UpdateCategory("expense-food", CategoryUpdate{Type: &bad})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestDeleteCategory(t *testing.T) {
	svc := NewCategoryService(testutil.NewMemoryStateStore())

	if !svc.DeleteCategory("expense-other") {
		t.Fatal("expected delete to succeed")
	}
	if svc.DeleteCategory("expense-other") {
		t.Error("expected second delete to be a no-op")
	}
	_, err := svc.GetCategory("expense-other")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestCategoryService_Load(t *testing.T) {
	state := testutil.NewMemoryStateStore()
	first := NewCategoryService(state)
	first.DeleteCategory("income-gifts")

	second := NewCategoryService(state)
	testutil.AssertNoError(t, second.Load(context.Background()))
	if n := len(second.ListCategories()); n != 13 {
		t.Errorf("expected 13 categories after load, got %d", n)
	}
}
