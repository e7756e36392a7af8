package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

var testNow = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

func mustRow(t *testing.T, value, date, comment, direction string) ledger.Row {
	t.Helper()
	row, err := ledger.NewRow(value, date, comment, direction)
	if err != nil {
		t.Fatalf("NewRow failed: %v", err)
	}
	return row
}

func testLedger(t *testing.T) *ledger.RowSet {
	t.Helper()
	rs := ledger.NewRowSet()
	rs.Append(
		// May: two members, one donation, one bill
		mustRow(t, "20", "2024-05-02", "may #dues:alice", "incoming"),
		mustRow(t, "30", "2024-05-03", "may #dues:bob", "incoming"),
		mustRow(t, "15", "2024-05-10", "donation", "incoming"),
		mustRow(t, "40", "2024-05-20", "power #electricity", "outgoing"),
		// June: one member
		mustRow(t, "25", "2024-06-02", "june #dues:alice", "incoming"),
		mustRow(t, "10", "2024-06-15", "supplies", "outgoing"),
		// July (current month): feeds MonthTD only
		mustRow(t, "20", "2024-07-01", "july #dues:alice", "incoming"),
	)
	return rs
}

func findRow(t *testing.T, r *Report, label string) MonthStats {
	t.Helper()
	for _, row := range r.Rows {
		if row.Label == label {
			return row
		}
	}
	t.Fatalf("report has no %q row", label)
	return MonthStats{}
}

func TestAggregateMonths(t *testing.T) {
	report, err := Aggregate(testLedger(t), testNow)
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}

	wantOrder := []string{"2024-05", "2024-06", LabelAverage, LabelMonthTD, LabelTotal}
	if len(report.Rows) != len(wantOrder) {
		t.Fatalf("%d rows, expected %d", len(report.Rows), len(wantOrder))
	}
	for i, label := range wantOrder {
		if report.Rows[i].Label != label {
			t.Errorf("row %d = %s, expected %s", i, report.Rows[i].Label, label)
		}
	}

	may := findRow(t, report, "2024-05")
	if got := may.Incoming.String(); got != "65" {
		t.Errorf("May incoming = %s, expected 65", got)
	}
	if got := may.Outgoing.String(); got != "-40" {
		t.Errorf("May outgoing = %s, expected -40", got)
	}
	if got := may.Dues.String(); got != "50" {
		t.Errorf("May dues = %s, expected 50", got)
	}
	if got := may.Other.String(); got != "15" {
		t.Errorf("May other = %s, expected 15", got)
	}
	if may.Members != 2 {
		t.Errorf("May members = %d, expected 2", may.Members)
	}
	if may.ARPM != 25 {
		t.Errorf("May ARPM = %d, expected 25", may.ARPM)
	}
}

func TestAggregateRollups(t *testing.T) {
	report, err := Aggregate(testLedger(t), testNow)
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}

	average := findRow(t, report, LabelAverage)
	if got := average.Incoming.String(); got != "45" {
		t.Errorf("Average incoming = %s, expected 45", got)
	}
	if got := average.Dues.String(); got != "37.5" {
		t.Errorf("Average dues = %s, expected 37.5", got)
	}
	if average.Members != 1 {
		t.Errorf("Average members = %d, expected floor(3/2) = 1", average.Members)
	}
	if average.ARPM != 37 {
		t.Errorf("Average ARPM = %d, expected floor(37.5/1) = 37", average.ARPM)
	}

	monthTD := findRow(t, report, LabelMonthTD)
	if got := monthTD.Dues.String(); got != "20" {
		t.Errorf("MonthTD dues = %s, expected 20", got)
	}

	total := findRow(t, report, LabelTotal)
	if got := total.Incoming.String(); got != "90" {
		t.Errorf("Total incoming = %s, expected 90", got)
	}
	if got := total.Outgoing.String(); got != "-50" {
		t.Errorf("Total outgoing = %s, expected -50", got)
	}
	if total.Members != 3 {
		t.Errorf("Total members = %d, expected 3", total.Members)
	}
}

func TestAggregateRunningBalance(t *testing.T) {
	report, err := Aggregate(testLedger(t), testNow)
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}

	// Net per presentation row: May 25, June 15, Average 20, MonthTD 20,
	// Total 40; the balance is the prefix sum over that order.
	want := []string{"25", "40", "60", "80", "120"}
	for i, row := range report.Rows {
		if got := row.Balance.String(); got != want[i] {
			t.Errorf("balance[%s] = %s, expected %s", row.Label, got, want[i])
		}
	}
}

func TestAggregateARPMSentinel(t *testing.T) {
	rs := ledger.NewRowSet()
	rs.Append(
		mustRow(t, "15", "2024-05-10", "donation", "incoming"),
		mustRow(t, "40", "2024-05-20", "power #electricity", "outgoing"),
	)

	report, err := Aggregate(rs, testNow)
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}

	may := findRow(t, report, "2024-05")
	if may.Members != 0 {
		t.Errorf("members = %d, expected 0", may.Members)
	}
	if may.ARPM != ARPMSentinel {
		t.Errorf("ARPM = %d, expected sentinel %d", may.ARPM, ARPMSentinel)
	}
}

func TestAggregateDuplicateDues(t *testing.T) {
	rs := ledger.NewRowSet()
	rs.Append(
		mustRow(t, "20", "2024-05-02", "may #dues:alice", "incoming"),
		mustRow(t, "20", "2024-05-28", "may again #dues:alice", "incoming"),
	)

	if _, err := Aggregate(rs, testNow); err == nil {
		t.Error("Aggregate() expected duplicate dues error")
	}
}

func TestAggregateDistinctAmountsAreNotDuplicates(t *testing.T) {
	rs := ledger.NewRowSet()
	rs.Append(
		mustRow(t, "20", "2024-05-02", "may #dues:alice", "incoming"),
		mustRow(t, "25", "2024-05-28", "top up #dues:alice", "incoming"),
	)

	report, err := Aggregate(rs, testNow)
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}
	may := findRow(t, report, "2024-05")
	if may.Members != 1 {
		t.Errorf("members = %d, expected 1", may.Members)
	}
	if got := may.Dues.String(); got != "45" {
		t.Errorf("dues = %s, expected 45", got)
	}
}

func TestProjections(t *testing.T) {
	outgoing := decimal.RequireFromString("-100")

	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"members at rate 20", MembersNeeded(outgoing, decimal.NewFromInt(20)), 5},
		{"members at rate 30 floors", MembersNeeded(outgoing, decimal.NewFromInt(30)), 3},
		{"members at rate 0 sentinel", MembersNeeded(outgoing, decimal.Zero), ARPMSentinel},
		{"dues for 4 members", DuesNeeded(outgoing, 4), 25},
		{"dues for 3 members floors", DuesNeeded(outgoing, 3), 33},
		{"dues for 0 members sentinel", DuesNeeded(outgoing, 0), ARPMSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, expected %d", tt.got, tt.want)
			}
		})
	}
}

func TestRenderTSV(t *testing.T) {
	report, err := Aggregate(testLedger(t), testNow)
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}

	out := report.RenderTSV()

	if !strings.HasPrefix(out, "# Columns:\n# 1: month\n") {
		t.Errorf("missing column header block:\n%s", out)
	}
	if !strings.Contains(out, "2024-05\t65\t-40\t50\t15\t2\t25\t25\n") {
		t.Errorf("missing May data line:\n%s", out)
	}
	for _, label := range []string{LabelAverage, LabelMonthTD, LabelTotal} {
		if !strings.Contains(out, label+"\t") {
			t.Errorf("missing %s row:\n%s", label, out)
		}
	}
}

func TestRenderTable(t *testing.T) {
	report, err := Aggregate(testLedger(t), testNow)
	if err != nil {
		t.Fatalf("Aggregate() failed: %v", err)
	}

	out := report.RenderTable([]decimal.Decimal{decimal.NewFromInt(20)}, []int64{5})

	if !strings.Contains(out, "Month") || !strings.Contains(out, "ARPM") {
		t.Errorf("missing table header:\n%s", out)
	}
	// Average outgoing is -25: one member at dues 20, rate 5 each.
	if !strings.Contains(out, "Members needed at dues 20: 1") {
		t.Errorf("missing members projection:\n%s", out)
	}
	if !strings.Contains(out, "Dues needed for 5 members: 5") {
		t.Errorf("missing dues projection:\n%s", out)
	}
}
