// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import "testing"

func TestQueryIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"empty", Query{}, true},
		{"whitespace only", Query{Expression: "   "}, true},
		{"expression", Query{Expression: "machine learning"}, false},
		{"filters without expression are empty", Query{YearFrom: 2020, DocType: "ar"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryBuild(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			"bare phrase wrapped",
			Query{Expression: "artificial intelligence libraries"},
			"TITLE-ABS-KEY(artificial intelligence libraries)",
		},
		{
			"field-qualified passed through",
			Query{Expression: `TITLE-ABS-KEY("inteligencia artificial" AND bibliotecas)`},
			`TITLE-ABS-KEY("inteligencia artificial" AND bibliotecas)`,
		},
		{
			"author qualifier passed through",
			Query{Expression: "AUTH(Silva) AND TITLE(museums)"},
			"AUTH(Silva) AND TITLE(museums)",
		},
		{
			"year range appended",
			Query{Expression: "digital humanities", YearFrom: 2019, YearTo: 2022},
			"TITLE-ABS-KEY(digital humanities) AND PUBYEAR > 2018 AND PUBYEAR < 2023",
		},
		{
			"year from only",
			Query{Expression: "x y z", YearFrom: 2021},
			"TITLE-ABS-KEY(x y z) AND PUBYEAR > 2020",
		},
		{
			"doctype and open access",
			Query{Expression: "scientometrics", DocType: "ar", OpenAccessOnly: true},
			"TITLE-ABS-KEY(scientometrics) AND DOCTYPE(ar) AND OPENACCESS(1)",
		},
		{
			"empty expression",
			Query{},
			"",
		},
		{
			"surrounding whitespace trimmed",
			Query{Expression: "  bibliometrics  "},
			"TITLE-ABS-KEY(bibliometrics)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Build(); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryCacheKey(t *testing.T) {
	q := Query{Expression: "bibliometrics", YearFrom: 2020}
	a := q.CacheKey(100)
	b := q.CacheKey(100)
	if a != b {
		t.Errorf("CacheKey not stable: %q vs %q", a, b)
	}
	if q.CacheKey(200) == a {
		t.Error("CacheKey should vary with the record cap")
	}
	other := Query{Expression: "bibliometrics", YearFrom: 2021}
	if other.CacheKey(100) == a {
		t.Error("CacheKey should vary with the query filters")
	}
}
