// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Customer record as the customers endpoint returns it.
package syncro

// Customer is an account that contacts belong to.
type Customer struct {
	ID           int64   `json:"id"`
	BusinessName *string `json:"business_name"`
	FirstName    *string `json:"firstname"`
	LastName     *string `json:"lastname"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
}
