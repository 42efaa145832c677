/*
Package match correlates flat references against drawing-register titles.

	+----------+     +---------------+
	|   Keys   | --> |    Matcher    | --> Matches
	+----------+     | (substring    |     UnmatchedKeys
	+----------+     |  containment) |     UnusedSections
	| Register | --> |               |
	+----------+     +---------------+

🎯 Purpose:
- Derives a literal pattern per key (prefix + key)
- Scans every register title case-insensitively
- Keeps all matches, not just the first
- Tracks section drawings never claimed by any key

📝 Design Philosophy:
Matching is literal substring containment, never a regex. Flat references
routinely contain characters that are regex metacharacters, and the tool
must treat them as ordinary text. Keeping all matches when two keys overlap
is deliberate, observed behavior of the process this tool automates.
*/
package match
