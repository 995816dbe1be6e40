// Package portfolio revalues a portfolio of bonds, options, equities and
// funds on a pricing date.
//
// The main types are:
//   - ReferenceData: the instrument universe with its price histories, fx
//     table, curve quotes and option settings. SetPricingDate rebuilds the
//     zero curve, the volatility surface, then every bond and option model.
//   - Ledger: the append-only trade and cash blotters. Rebuild derives the
//     Snapshot of a pricing date: positions, cash by currency and the
//     currency and asset class breakdowns.
//   - BondBook and OptionBook: the bond and option sub-portfolios with their
//     analytics, the cash projection and the gamma matrix.
//   - Portfolio: ties the above together with a ReportGenerator.
//
// Every fallback on missing or degenerate data is recorded in a diag.Log
// returned next to the values, so that runs stay reproducible and their
// approximations visible.
//
// Inputs are JSONL files described by a YAML Config, see LoadConfig.
package portfolio
