package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	got := DateOf(time.Date(2024, 3, 1, 0, 30, 0, 0, loc))
	if got.String() != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s", got)
	}
	if !got.Equal(NewDate(2024, 3, 1).Time) {
		t.Fatalf("expected midnight UTC, got %v", got.Time)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-02-29", "2024-02-29", true},
		{" 2024-01-05 ", "2024-01-05", true},
		{"2024-01-05T18:30:00Z", "2024-01-05", true},
		{"2023-02-29", "", false},
		{"05/01/2024", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.want {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("Income"); err != nil || k != KindIncome {
		t.Fatalf("expected income, got %q (err=%v)", k, err)
	}
	if _, err := ParseKind("transfer"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestKindDefaults(t *testing.T) {
	if KindIncome.DefaultIcon() == KindExpense.DefaultIcon() {
		t.Fatalf("expected distinct placeholder icons")
	}
	if KindIncome.LabelField() != "source" || KindExpense.LabelField() != "title" {
		t.Fatalf("unexpected label fields")
	}
	tx := Transaction{Kind: KindExpense}
	if tx.IconOrDefault() != KindExpense.DefaultIcon() {
		t.Fatalf("expected default icon, got %q", tx.IconOrDefault())
	}
	tx.Icon = "🍕"
	if tx.IconOrDefault() != "🍕" {
		t.Fatalf("expected explicit icon, got %q", tx.IconOrDefault())
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		OwnerID: "u1",
		Kind:    KindExpense,
		Label:   "Groceries",
		Amount:  42.5,
		Date:    NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := map[string]struct {
		mutate func(*Transaction)
		want   error
	}{
		"kind":      {func(tx *Transaction) { tx.Kind = "x" }, ErrInvalidKind},
		"owner":     {func(tx *Transaction) { tx.OwnerID = " " }, ErrEmptyOwner},
		"label":     {func(tx *Transaction) { tx.Label = "" }, ErrEmptyLabel},
		"long":      {func(tx *Transaction) { tx.Label = strings.Repeat("a", 201) }, ErrLabelTooLong},
		"zero":      {func(tx *Transaction) { tx.Amount = 0 }, ErrInvalidAmount},
		"negative":  {func(tx *Transaction) { tx.Amount = -3 }, ErrInvalidAmount},
		"zero date": {func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
	}
	for name, tc := range bads {
		tx := good
		tc.mutate(&tx)
		if err := tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestNewUserInputValidate(t *testing.T) {
	good := NewUserInput{FullName: "Ada", Email: "Ada@Example.com", Password: "longenough"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	cases := []struct {
		in   NewUserInput
		want error
	}{
		{NewUserInput{Email: "a@b.com", Password: "longenough"}, ErrEmptyFullName},
		{NewUserInput{FullName: "A", Email: "nope", Password: "longenough"}, ErrInvalidEmail},
		{NewUserInput{FullName: "A", Email: "a@b.com", Password: "short"}, ErrWeakPassword},
	}
	for i, tc := range cases {
		if err := tc.in.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}
