// Package users implements a small user-management service: registration,
// password sign-in with bearer tokens, profile self-service, resume upload,
// and admin moderation (list, block, unblock, remove).
//
// Authorization contract:
//   - TokenService signs and validates short-lived HS256 JWTs whose subject is
//     the account email. Tokens are never revoked; blocking or removing an
//     account takes effect at the authorization gate instead.
//   - Auther resolves the current user from a raw token: it validates the
//     token, looks the subject up in the Store (a subject that no longer
//     exists is Unauthorized), and rejects blocked accounts with Forbidden.
//
// State:
//   - Store is a process-lifetime credential table keyed by email. The
//     in-memory implementation serializes mutations behind a single lock and
//     exposes Update for atomic read-modify-write sequences, so handlers never
//     observe a torn record. Construct one store per process (or per test) and
//     hand it to the services explicitly.
//
// Profile completion is a derived flag: it is recomputed on signup, sign-in,
// and profile update, never trusted stale.
package users
