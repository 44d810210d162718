package store

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/kael37/PixelLedger/internal/model"
)

func drain(s *Store) {
	select {
	case <-s.Changes():
	default:
	}
}

func TestAddBlockAssignsUniqueIDsAndPreservesOrder(t *testing.T) {
	s := New(nil)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		b := s.AddBlock("block", model.AssetCash, float64(i), "💰")
		if b.ID == "" {
			t.Fatal("empty id assigned")
		}
		if seen[b.ID] {
			t.Fatalf("duplicate id %s", b.ID)
		}
		seen[b.ID] = true
	}

	blocks := s.Snapshot().Blocks
	if len(blocks) != 50 {
		t.Fatalf("len = %d, want 50", len(blocks))
	}
	// 追加顺序即集合顺序
	for i, b := range blocks {
		if b.Balance != float64(i) {
			t.Fatalf("order broken at %d: balance %v", i, b.Balance)
		}
	}
}

func TestUpdateBlockBalanceOnlyTouchesBalance(t *testing.T) {
	s := New(nil)
	a := s.AddBlock("现金", model.AssetCash, 1000, "💰")
	b := s.AddBlock("银行", model.AssetBank, 5000, "🏦")

	s.UpdateBlockBalance(a.ID, 1500)

	blocks := s.Snapshot().Blocks
	if blocks[0].Balance != 1500 {
		t.Errorf("balance = %v, want 1500", blocks[0].Balance)
	}
	if blocks[0].Name != "现金" || blocks[0].Type != model.AssetCash || blocks[0].Icon != "💰" {
		t.Errorf("other fields changed: %+v", blocks[0])
	}
	if blocks[1] != b {
		t.Errorf("sibling record changed: %+v", blocks[1])
	}
}

func TestUpdateAndDeleteAbsentIDAreNoOps(t *testing.T) {
	s := New(nil)
	s.AddBlock("现金", model.AssetCash, 1000, "💰")
	drain(s)

	s.UpdateBlockBalance("missing", 9999)
	s.DeleteBlock("missing")
	s.UpdateMineAmount("missing", 1)
	s.DeleteMine("missing")
	s.UpdateInvestmentValue("missing", 1)
	s.DeleteInvestment("missing")
	s.DeletePolicy("missing")
	s.DeleteDebt("missing")

	got := s.Snapshot()
	if len(got.Blocks) != 1 || got.Blocks[0].Balance != 1000 {
		t.Errorf("state mutated by absent-id ops: %+v", got.Blocks)
	}
	// no-op 不应发出变更信号
	select {
	case <-s.Changes():
		t.Error("absent-id op emitted a change signal")
	default:
	}
}

func TestEmptyPatchesAreNoOps(t *testing.T) {
	s := New(nil)
	s.AddBlock("现金", model.AssetCash, 1000, "💰")
	drain(s)

	s.UpdateShield(ShieldPatch{})
	s.UpdateUserSettings(UserPatch{})

	select {
	case <-s.Changes():
		t.Error("empty patch emitted a change signal")
	default:
	}

	// 带字段的 patch 照常发信号
	fund := 500.0
	s.UpdateShield(ShieldPatch{EmergencyFund: &fund})
	select {
	case <-s.Changes():
	default:
		t.Error("non-empty shield patch did not signal")
	}

	name := "NEO"
	s.UpdateUserSettings(UserPatch{Username: &name})
	select {
	case <-s.Changes():
	default:
		t.Error("non-empty user patch did not signal")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(nil)
	s.AddBlock("现金", model.AssetCash, 1000, "💰")

	snap := s.Snapshot()
	snap.Blocks[0].Balance = -1
	snap.User.Username = "EVIL"

	if got := s.Snapshot(); got.Blocks[0].Balance != 1000 || got.User.Username != "OPERATOR_01" {
		t.Errorf("mutating a snapshot leaked into the store: %+v", got)
	}
}

func TestAddInvestmentDefaultsManualCode(t *testing.T) {
	s := New(nil)
	inv := s.AddInvestment(model.Investment{Name: "黄金", Type: model.InvestMetal})
	if inv.Code != model.ManualCode {
		t.Errorf("code = %q, want %q", inv.Code, model.ManualCode)
	}
	withCode := s.AddInvestment(model.Investment{Name: "BTC", Code: "BTC-USD", Type: model.InvestCrypto})
	if withCode.Code != "BTC-USD" {
		t.Errorf("code = %q, want BTC-USD", withCode.Code)
	}
}

func TestUpdateShieldPartialMerge(t *testing.T) {
	s := New(nil)
	fund := 3000.0
	s.UpdateShield(ShieldPatch{EmergencyFund: &fund})

	shield := s.Snapshot().Shield
	if shield.EmergencyFund != 3000 {
		t.Errorf("fund = %v, want 3000", shield.EmergencyFund)
	}
	if shield.EmergencyGoal != 0 {
		t.Errorf("goal changed without being patched: %v", shield.EmergencyGoal)
	}

	goal := 10000.0
	s.UpdateShield(ShieldPatch{EmergencyGoal: &goal})
	shield = s.Snapshot().Shield
	if shield.EmergencyFund != 3000 || shield.EmergencyGoal != 10000 {
		t.Errorf("shield = %+v", shield)
	}
}

func TestUpdatePasswordClearsDefaultFlagAndHashes(t *testing.T) {
	s := New(nil)
	if !s.Snapshot().User.IsDefaultPassword {
		t.Fatal("fresh state should carry the default-password flag")
	}

	if err := s.UpdatePassword("newpass"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	user := s.Snapshot().User
	if user.IsDefaultPassword {
		t.Error("flag not cleared")
	}
	if user.PasswordHash == "newpass" || user.PasswordHash == "" {
		t.Errorf("password stored without hashing: %q", user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	// 标记清除是无条件的：再改一次仍然为 false
	if err := s.UpdatePassword("another"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if s.Snapshot().User.IsDefaultPassword {
		t.Error("flag reappeared")
	}
}

func TestToggleTheme(t *testing.T) {
	s := New(nil)
	if got := s.ToggleTheme(); got != model.ThemeNeon {
		t.Errorf("first toggle = %s, want NEON", got)
	}
	if got := s.ToggleTheme(); got != model.ThemeClassic {
		t.Errorf("second toggle = %s, want CLASSIC", got)
	}
}

func TestUpdateUserSettingsAvatarSemantics(t *testing.T) {
	s := New(nil)

	avatar := "data:image/png;base64,AAAA"
	s.UpdateUserSettings(UserPatch{Avatar: &avatar})
	if got := s.Snapshot().User.Avatar; got == nil || *got != avatar {
		t.Fatalf("avatar not set: %v", got)
	}

	// 空串表示清除
	empty := ""
	s.UpdateUserSettings(UserPatch{Avatar: &empty})
	if got := s.Snapshot().User.Avatar; got != nil {
		t.Errorf("avatar not cleared: %v", *got)
	}
}

func TestReplaceAndReset(t *testing.T) {
	s := New(nil)
	s.AddBlock("现金", model.AssetCash, 1000, "💰")

	imported := model.DefaultState()
	imported.User.Username = "OPERATOR_02"
	imported.Blocks = []model.AssetBlock{{ID: "x", Name: "微信", Type: model.AssetWeChat, Balance: 42}}
	s.Replace(imported)

	got := s.Snapshot()
	if got.User.Username != "OPERATOR_02" || len(got.Blocks) != 1 || got.Blocks[0].Balance != 42 {
		t.Errorf("replace did not take: %+v", got)
	}

	s.Reset()
	got = s.Snapshot()
	if got.User.Username != "OPERATOR_01" || len(got.Blocks) != 0 {
		t.Errorf("reset did not restore defaults: %+v", got)
	}
}

func TestMutationsEmitChangeSignal(t *testing.T) {
	s := New(nil)
	s.AddBlock("现金", model.AssetCash, 1, "💰")
	select {
	case <-s.Changes():
	default:
		t.Fatal("mutation did not emit a change signal")
	}

	// 信号合并：连续多次变更最多积压一个信号
	s.AddBlock("a", model.AssetCash, 1, "")
	s.AddBlock("b", model.AssetBank, 2, "")
	<-s.Changes()
	select {
	case <-s.Changes():
		t.Error("signals not coalesced")
	default:
	}
}
