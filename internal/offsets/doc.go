// Package offsets loads a reverse-engineered offset schema document and
// normalizes its several historical JSON shapes into one canonical flat
// field list plus pointer-chain specs for each record table.
//
// Shapes handled:
//   - canonical: {"offsets": [...], "base_pointers": {...}, "game_info": {...}}
//   - version-keyed: {"2K25": {...}, "2K26": {...}} selected by executable
//   - merged per-field: top-level "versions" map plus per-entry version maps
//   - legacy flat "Base" address maps
//   - nested per-category field maps ("Player_Info")
//
// Problems short of an empty schema are collected as diagnostics; the
// affected table or field degrades to unavailable instead of failing the
// whole load.
package offsets
