package handlers

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"

	"walletledger/internal/models"
	"walletledger/internal/services"
	"walletledger/internal/testutil"
)

// lateAddLedger records a transaction for the wallet after the handler's
// existence check and just before the guarded delete runs.
type lateAddLedger struct {
	services.TransactionServicer
}

func (l lateAddLedger) DeleteWalletIfUnused(walletID string, wallets services.WalletRemover) (bool, error) {
	if _, err := l.AddTransaction(services.TransactionInput{
		Amount:   testutil.Dec("40"),
		WalletID: walletID,
		Type:     models.TransactionTypeExpense,
	}); err != nil {
		return false, err
	}
	return l.TransactionServicer.DeleteWalletIfUnused(walletID, wallets)
}

func TestWalletHandler_CreateWallet(t *testing.T) {
	t.Run("returns_201_with_opening_balance", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do("POST", "/wallets", `{"name":"Bank","balance":"250.50","icon":"Bank","color":"#0984E3"}`)
		assertStatus(t, rec, 201)

		w := object(t, parseJSON(t, rec), "wallet")
		if w["name"] != "Bank" || w["balance"] != "250.5" {
			t.Errorf("unexpected wallet: %v", w)
		}
		if got := env.audit.actions(); len(got) != 1 || got[0] != "CREATE_WALLET" {
			t.Errorf("expected CREATE_WALLET audit, got %v", got)
		}
	})

	t.Run("accepts_numeric_balance", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createWallet(t, `{"name":"Savings","balance":12.25}`)
		if got := env.balance(t, id); got != "12.25" {
			t.Errorf("expected 12.25, got %s", got)
		}
	})

	t.Run("returns_400_on_missing_name", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do("POST", "/wallets", `{"balance":"1"}`)
		assertStatus(t, rec, 400)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_400_on_bad_color", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do("POST", "/wallets", `{"name":"Bank","color":"blue"}`)
		assertStatus(t, rec, 400)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestWalletHandler_ListWallets(t *testing.T) {
	env := newTestEnv(t)
	env.createWallet(t, `{"name":"Bank"}`)
	env.createWallet(t, `{"name":"Card"}`)

	t.Run("paginates_in_insertion_order", func(t *testing.T) {
		rec := env.do("GET", "/wallets?page=2&page_size=2", "")
		assertStatus(t, rec, 200)

		result := parseJSON(t, rec)
		if result["total_items"] != float64(3) || result["total_pages"] != float64(2) {
			t.Errorf("unexpected page metadata: %v", result)
		}
		data := result["data"].([]interface{})
		if len(data) != 1 || data[0].(map[string]interface{})["name"] != "Card" {
			t.Errorf("expected Card on page 2, got %v", data)
		}
	})

	t.Run("rejects_oversized_page", func(t *testing.T) {
		rec := env.do("GET", "/wallets?page_size=500", "")
		assertStatus(t, rec, 400)
	})
}

func TestWalletHandler_GetWallet(t *testing.T) {
	env := newTestEnv(t)

	t.Run("returns_default_wallet", func(t *testing.T) {
		rec := env.do("GET", "/wallets/"+services.DefaultWalletID, "")
		assertStatus(t, rec, 200)
		if object(t, parseJSON(t, rec), "wallet")["name"] != "Cash" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("reports_can_delete", func(t *testing.T) {
		rec := env.do("GET", "/wallets/"+services.DefaultWalletID, "")
		if parseJSON(t, rec)["canDelete"] != false {
			t.Errorf("expected canDelete=false for the only wallet, got %s", rec.Body.String())
		}

		id := env.createWallet(t, `{"name":"Bank"}`)
		rec = env.do("GET", "/wallets/"+id, "")
		if parseJSON(t, rec)["canDelete"] != true {
			t.Errorf("expected canDelete=true, got %s", rec.Body.String())
		}
	})

	t.Run("returns_404_for_unknown", func(t *testing.T) {
		rec := env.do("GET", "/wallets/missing", "")
		assertStatus(t, rec, 404)
		assertErrorCode(t, parseJSON(t, rec), "WALLET_NOT_FOUND")
	})
}

func TestWalletHandler_UpdateWallet(t *testing.T) {
	t.Run("merges_present_fields_only", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createWallet(t, `{"name":"Bank","balance":"10","color":"#FFFFFF"}`)

		rec := env.do("PUT", "/wallets/"+id, `{"name":"Main bank"}`)
		assertStatus(t, rec, 200)
		result := parseJSON(t, rec)
		if result["updated"] != true {
			t.Fatalf("expected updated=true, got %v", result)
		}
		w := object(t, result, "wallet")
		if w["name"] != "Main bank" || w["color"] != "#FFFFFF" || w["balance"] != "10" {
			t.Errorf("unexpected wallet %v", w)
		}
	})

	t.Run("balance_override_bypasses_reconciliation", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createWallet(t, `{"name":"Bank","balance":"10"}`)
		env.createTransaction(t, fmt.Sprintf(`{"amount":"5","type":"expense","walletId":%q}`, id))

		assertStatus(t, env.do("PUT", "/wallets/"+id, `{"balance":"100"}`), 200)
		if got := env.balance(t, id); got != "100" {
			t.Errorf("expected 100, got %s", got)
		}
	})

	t.Run("unknown_id_is_a_noop", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do("PUT", "/wallets/missing", `{"name":"X"}`)
		assertStatus(t, rec, 200)
		if parseJSON(t, rec)["updated"] != false {
			t.Errorf("expected updated=false, got %s", rec.Body.String())
		}
		if len(env.audit.actions()) != 0 {
			t.Errorf("expected no audit entries, got %v", env.audit.actions())
		}
	})

	t.Run("rejects_blank_name", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do("PUT", "/wallets/"+services.DefaultWalletID, `{"name":"  "}`)
		assertStatus(t, rec, 400)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestWalletHandler_DeleteWallet(t *testing.T) {
	t.Run("refuses_wallet_with_transactions", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createWallet(t, `{"name":"Bank"}`)
		env.createTransaction(t, fmt.Sprintf(`{"amount":"3","type":"income","walletId":%q}`, id))

		rec := env.do("DELETE", "/wallets/"+id, "")
		assertStatus(t, rec, 409)
		assertErrorCode(t, parseJSON(t, rec), "WALLET_IN_USE")

		if _, err := env.wallets.GetWallet(id); err != nil {
			t.Errorf("wallet should still exist: %v", err)
		}
		if got := env.balance(t, id); got != "3" {
			t.Errorf("balance changed to %s", got)
		}
	})

	t.Run("refuses_last_wallet", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do("DELETE", "/wallets/"+services.DefaultWalletID, "")
		assertStatus(t, rec, 409)
		assertErrorCode(t, parseJSON(t, rec), "LAST_WALLET")
		if len(env.wallets.ListWallets()) != 1 {
			t.Error("expected the wallet to survive")
		}
	})

	t.Run("deletes_unused_wallet", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createWallet(t, `{"name":"Bank"}`)

		rec := env.do("DELETE", "/wallets/"+id, "")
		assertStatus(t, rec, 200)
		if parseJSON(t, rec)["deleted"] != true {
			t.Errorf("expected deleted=true, got %s", rec.Body.String())
		}
		if _, err := env.wallets.GetWallet(id); err == nil {
			t.Error("expected wallet to be gone")
		}
		actions := env.audit.actions()
		if actions[len(actions)-1] != "DELETE_WALLET" {
			t.Errorf("expected DELETE_WALLET audit, got %v", actions)
		}
	})

	t.Run("transaction_added_after_lookup_blocks_delete", func(t *testing.T) {
		env := newTestEnv(t)
		id := env.createWallet(t, `{"name":"Bank","balance":"100"}`)

		handler := NewWalletHandler(env.wallets, lateAddLedger{env.ledger}, env.audit)
		r := gin.New()
		r.DELETE("/wallets/:id", handler.DeleteWallet)

		rec := doRequest(r, "DELETE", "/wallets/"+id, "")
		assertStatus(t, rec, 409)
		assertErrorCode(t, parseJSON(t, rec), "WALLET_IN_USE")

		if got := env.balance(t, id); got != "60" {
			t.Errorf("expected the late expense applied, balance %s", got)
		}
	})

	t.Run("unknown_id_reports_not_deleted", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do("DELETE", "/wallets/missing", "")
		assertStatus(t, rec, 200)
		if parseJSON(t, rec)["deleted"] != false {
			t.Errorf("expected deleted=false, got %s", rec.Body.String())
		}
	})
}

func TestWalletHandler_GetWalletTransactions(t *testing.T) {
	env := newTestEnv(t)
	bank := env.createWallet(t, `{"name":"Bank"}`)
	env.createTransaction(t, fmt.Sprintf(`{"amount":"1","type":"income","walletId":%q}`, bank))
	env.createTransaction(t, `{"amount":"2","type":"income","walletId":"cash"}`)
	env.createTransaction(t, fmt.Sprintf(`{"amount":"3","type":"expense","walletId":%q}`, bank))

	t.Run("lists_only_that_wallet_newest_first", func(t *testing.T) {
		rec := env.do("GET", "/wallets/"+bank+"/transactions", "")
		assertStatus(t, rec, 200)

		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(data))
		}
		if data[0].(map[string]interface{})["amount"] != "3" {
			t.Errorf("expected newest first, got %v", data)
		}
	})

	t.Run("returns_404_for_unknown_wallet", func(t *testing.T) {
		rec := env.do("GET", "/wallets/missing/transactions", "")
		assertStatus(t, rec, 404)
	})
}
