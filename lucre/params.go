// Copyright (c) 2023 The Lucre developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lucre

// Constants of the ledger service.
const (
	// ServiceName name of the ledger service.
	ServiceName = "lucre"

	// ServiceID unique identifier of the ledger service.
	ServiceID uint16 = 128

	// InitialBalance balance granted to every newly created account.
	InitialBalance uint64 = 100
)
