// Package testmodels holds row types with generated extractors. The root
// package tests run them against sqlite and Postgres next to reflection
// derived twins.
package testmodels

import "database/sql"

//go:generate go run github.com/go-mizu/xrow/cmd/xrowgen generate .

// User joins a user row with its organization.
//
//xrow:generate
type User struct {
	ID    int64
	Name  string
	Email string `column:"email_address"`
	Org   *Org   `column:",inline"`
}

type Org struct {
	OrgID   int64
	OrgName string
}

//xrow:generate
type Pair struct {
	X int64
	Y int64
}

// Account exercises a discriminated length group, a repeated column and a
// fixed position.
//
//xrow:generate
type Account struct {
	AccountName string
	AccountRole string
	Nick        string `column:"account_name"`
	Rank        int64  `column:"idx=3"`
}

//xrow:generate
type Tagged[T any] struct {
	Label string
	Value T
}

// Keys has length groups that are told apart by 2, 4 and 8 byte
// discriminators.
//
//xrow:generate
type Keys struct {
	Axx  int64
	Axy  int64
	Ayx  int64
	Ayy  int64
	LoLo int64 `column:"lo_lo"`
	LoHi int64 `column:"lo_hi"`
	HiLo int64 `column:"hi_lo"`
	HiHi int64 `column:"hi_hi"`
	Up   int64 `column:"hi_hi_hi_hi"`
	Wave int64 `column:"hi_lo_hi_lo"`
	Dip  int64 `column:"hi_lo_lo_hi"`
	Rise int64 `column:"lo_lo_lo_hi"`
}

// Profile embeds a sql.Scanner as a single named column.
//
//xrow:generate
type Profile struct {
	sql.NullString `column:"nick"`
	ID             int64
}
