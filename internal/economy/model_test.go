package economy

import "testing"

func TestWarrantCrossed(t *testing.T) {
	tests := []struct {
		before, after int64
		want          bool
	}{
		{90, 105, true},
		{50, 90, false},
		{0, 100, true},
		{100, 150, false}, // already active, no re-broadcast
		{99, 99, false},
	}
	for _, tc := range tests {
		if got := warrantCrossed(tc.before, tc.after); got != tc.want {
			t.Fatalf("warrantCrossed(%d, %d)=%v want %v", tc.before, tc.after, got, tc.want)
		}
	}
}

func TestSettleFines(t *testing.T) {
	tests := []struct {
		owed, amount int64
		wantAfter    int64
		wantCleared  bool
		wantOK       bool
	}{
		{30, 30, 0, true, true},
		{10, 25, 10, false, false}, // overpayment fails, nothing changes
		{50, 20, 30, false, true},
		{100, 0, 100, false, true},
		{0, 0, 0, true, true},
	}
	for _, tc := range tests {
		after, cleared, ok := settleFines(tc.owed, tc.amount)
		if after != tc.wantAfter || cleared != tc.wantCleared || ok != tc.wantOK {
			t.Fatalf("settleFines(%d,%d)=(%d,%v,%v) want (%d,%v,%v)",
				tc.owed, tc.amount, after, cleared, ok, tc.wantAfter, tc.wantCleared, tc.wantOK)
		}
	}
}

func TestSplitSpend(t *testing.T) {
	tests := []struct {
		cash, bank, price  int64
		wantCash, wantBank int64
		wantOK             bool
	}{
		{100, 50, 80, 80, 0, true},
		{100, 50, 120, 100, 20, true},
		{100, 50, 150, 100, 50, true},
		{100, 50, 151, 0, 0, false},
		{0, 0, 0, 0, 0, true},
		{10, 10, -5, 0, 0, false},
	}
	for _, tc := range tests {
		gotCash, gotBank, ok := splitSpend(tc.cash, tc.bank, tc.price)
		if ok != tc.wantOK || gotCash != tc.wantCash || gotBank != tc.wantBank {
			t.Fatalf("splitSpend(%d,%d,%d)=(%d,%d,%v) want (%d,%d,%v)",
				tc.cash, tc.bank, tc.price, gotCash, gotBank, ok, tc.wantCash, tc.wantBank, tc.wantOK)
		}
	}
}

func TestValidBalanceField(t *testing.T) {
	for _, f := range []string{"Cash", "Bank", "Stash"} {
		if !ValidBalanceField(f) {
			t.Fatalf("expected %q to be valid", f)
		}
	}
	for _, f := range []string{"cash", "Fines", "Warrant", "", "Properties"} {
		if ValidBalanceField(f) {
			t.Fatalf("expected %q to be rejected", f)
		}
	}
}

func TestItemLimit(t *testing.T) {
	if limit, ok := ItemLimit("Revolver"); !ok || limit != 2 {
		t.Fatalf("revolver limit=%d ok=%v", limit, ok)
	}
	if limit, ok := ItemLimit("license"); !ok || limit != 1 {
		t.Fatalf("license limit=%d ok=%v", limit, ok)
	}
	if _, ok := ItemLimit("food"); ok {
		t.Fatalf("food should be unlimited")
	}
}

func TestCategoryColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"pistol", "Pistol", true},
		{"FOOD", "Food", true},
		{"Treasure", "Treasure", true},
		{"wagon", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := CategoryColumn(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("CategoryColumn(%q)=(%q,%v) want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Blackwater   Ranch "); got != "blackwater ranch" {
		t.Fatalf("got %q", got)
	}
}
