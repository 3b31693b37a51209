// Package phys implements the rigid-body world the dice roll in.
//
// A [World] owns a static tray (floor plus four walls) and any number of
// dynamic die bodies. [World.Step] advances the simulation with fixed
// internal substeps: semi-implicit Euler integration under constant
// gravity, quaternion orientation update, impulse-based contact
// resolution with friction and restitution, and per-body sleeping once
// motion stays below threshold for long enough. Each Step returns the raw
// contacts it produced; the world reports them without interpreting them.
//
// Die pairs are pruned with a uniform spatial hash over the tray plane
// before narrow-phase tests, keeping Step cheap for double-digit die
// counts.
package phys
