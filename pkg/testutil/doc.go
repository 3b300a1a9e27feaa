// Package testutil provides in-memory build trees and a fake command
// runner for exercising the staging pipeline without touching the real
// filesystem or shelling out.
package testutil
