// Package domain models the static JSON content published by the upstream
// climate-news pipeline.
//
// # Storage Layout
//
// The pipeline writes read-only JSON documents under a single data root:
//
//	briefing/index.json              manifest of available briefing dates
//	briefing/{date}.json             legacy single briefing per day ("full")
//	briefing/{date}-morning.json     period briefing
//	briefing/{date}-afternoon.json   period briefing
//	briefing/en/{...}                English translations, same patterns
//	climate/{dataset}.json           five climate indicator series
//	news/index.json, news/{date}.json  raw collected articles per day
//
// Three storage conventions coexist: locale-partitioned (en/ subtree),
// period-partitioned ({date}-{period}.json), and the legacy flat layout
// ({date}.json). Which convention a given date uses is not knowable in
// advance, so document resolution walks an ordered candidate chain:
//
//  1. the exact filename, when the key already carries a period suffix
//  2. {date}-{period}.json, when an explicit period is requested
//  3. {date}-afternoon.json then {date}-morning.json (afternoon is the
//     more recently generated briefing and wins when both exist)
//  4. the legacy {date}.json, only when no period was named
//
// Each filename is tried at the requested locale's path first, then at the
// default-locale path. The chain is generated by [BriefingCandidates] as a
// pure ordered list so it can be tested without any transport.
//
// # Citations
//
// Section content embeds citation markers of the form [k]; marker [k]
// refers to the article at position k-1 of the briefing's article list.
// Article IDs are 1-based decimal strings assigned by the generator.
package domain
