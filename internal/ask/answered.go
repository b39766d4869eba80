// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package ask

// ReplyRef is the minimal shape IsAnswered needs from a message, kept
// independent of the store's Message type so this package has no import
// on internal/store.
type ReplyRef struct {
	Pubkey  string
	ReplyTo string
}

// IsAnswered reports whether any message in replies was authored by
// userPubkey and replies directly to askMessageID. This is never persisted
// as a flag on the ask itself — it is recomputed from the reply edges on
// every check, so it can never drift from what the store actually holds.
func IsAnswered(replies []ReplyRef, askMessageID, userPubkey string) bool {
	for _, r := range replies {
		if r.ReplyTo == askMessageID && r.Pubkey == userPubkey {
			return true
		}
	}
	return false
}
