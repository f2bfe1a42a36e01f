// Package naming provides consistent naming functions for synthesized constructs.
//
// Construct ids follow the pattern {App}{Kind} where {App} is the PascalCase
// form of the DNS-safe application name (nest-recipes-app becomes
// NestRecipesApp). Stage ids default to {Wave}{Region}, for example
// GammaUsEast1, so that the same wave can target several regions without
// collisions.
package naming
