// Package model holds the dual-entropy system definition: the coupled
// update rules linking informational entropy, meaning entropy, external
// reinforcement, and the transformative perturbation.
package model
