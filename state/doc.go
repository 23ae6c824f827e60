// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage of the built-in contracts.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ bulk write ] -> [ kv store ]
//	         |
//	   [ lru cache ]
//	         |
//	   [ kv store ]
//
// Every contract call runs under a checkpoint, so a failed call leaves no partial writes
// behind, including writes made on other contracts (e.g. token transfers) during the call.
package state
