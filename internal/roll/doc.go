// Package roll orchestrates a dice roll from throw to resolved values.
//
// A [Session] owns the body lifecycle on top of a [phys.World] and walks
// the Idle -> Rolling -> Settling -> Resolved state machine. Each
// [Session.Step] advances the world, classifies the step's contacts into
// {dice, floor, wall} events for the injected [Sink], and consults the
// [Monitor] for settlement. Settlement, or the hard simulated-time cap,
// resolves every die via [Resolve]: the face whose world-space normal is
// most aligned with up (for the d4, the resting face), mapped through the
// kind's value table.
//
// A roll always produces results. Unknown die kinds fall back to the
// default die, malformed shape data falls back to a uniform random value
// in range, and a roll that never settles is force-resolved at the
// timeout.
package roll
