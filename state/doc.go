// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides journaled contract storage on top of a kv store.
//
// Every write goes to an in-memory journal. Checkpoints allow a failed operation to be
// rolled back as a whole, and a Stage collects the surviving writes so they can be
// committed to the underlying store in one atomic batch.
package state
