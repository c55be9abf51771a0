/*
Package player extracts the signature descrambling program from a player
script and applies it to obfuscated stream signatures.

The script is treated strictly as data. The analyzer pattern-matches the
minified descrambling idiom (split, helper-call sequence, join) and the
bodies of the referenced helpers against three canonical shapes, compiling
the result into a typed program over the closed operation set
{swap, splice, reverse}. No JavaScript engine is ever invoked.

# Architecture

1. Analysis Layer
  - Structural regexes locate the entry function and its actions object
  - Helper bodies are classified by canonical shape
  - The throttling n-function is located independently and compiled with
    the same matching when it reduces to the known operation set

2. Application Layer
  - Pure, deterministic application of the compiled operation list
  - Stream URL assembly from the s/sp/url cipher payload

3. Cache Layer
  - Programs cached per player version (a version's code is immutable)
  - Concurrent analysis of the same version is deduplicated
  - Entries leave only by LRU pressure or explicit eviction

# Error Codes

- CIPHER_PROGRAM_NOT_FOUND: entry function or actions object not located
- UNKNOWN_OPERATION_SHAPE: a referenced helper matches no canonical shape
- INVALID_CIPHER_INPUT: signature or payload unusable
- PLAYER_SCRIPT_NOT_FOUND: page carries no player script reference

The first two are distinct on purpose: they tell "the site changed" apart
from anything network-shaped, which is the signal operators act on.
*/
package player
