// Package payment holds the Transaction aggregate recorded by the payment bridge.
//
// An order may have several transactions, one per payment attempt. A transaction starts
// PENDING and ends SUCCESS, FAILED or ABANDONED:
//
//	PENDING ──► SUCCESS
//	   │
//	   ├──────► FAILED
//	   │
//	   └──────► ABANDONED
//
// Reconciliation is idempotent: marking a SUCCESS transaction successful again changes nothing.
package payment
