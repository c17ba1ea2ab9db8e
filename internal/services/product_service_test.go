package services

import (
	"testing"

	"github.com/Shiva143-debug/backend-exp/internal/models"
	"github.com/Shiva143-debug/backend-exp/internal/testutil"
)

func TestGetCategoryProducts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db)

	testutil.CreateTestProduct(t, db, 1, "FOOD", "Snacks")
	testutil.CreateTestProduct(t, db, models.SharedUserID, "FOOD", "Groceries")
	testutil.CreateTestProduct(t, db, 2, "FOOD", "Caviar")

	products, err := svc.GetCategoryProducts(1, "food")
	testutil.AssertNoError(t, err)

	if len(products) != 2 || products[0].Product != "Groceries" || products[1].Product != "Snacks" {
		t.Errorf("unexpected products %+v", products)
	}

	_, err = svc.GetCategoryProducts(1, "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestCreateProduct(t *testing.T) {
	t.Run("creates_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		first, created, err := svc.CreateProduct(1, "food", "Snacks")
		testutil.AssertNoError(t, err)
		if !created || first.Category != "FOOD" {
			t.Errorf("expected new FOOD product, got created=%v %+v", created, first)
		}

		second, created, err := svc.CreateProduct(1, "FOOD", "snacks")
		testutil.AssertNoError(t, err)
		if created || second.ID != first.ID {
			t.Errorf("expected existing row, got created=%v id=%d", created, second.ID)
		}
	})

	t.Run("requires_names", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		_, _, err := svc.CreateProduct(1, "FOOD", " ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
