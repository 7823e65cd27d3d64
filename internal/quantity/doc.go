// Package quantity provides the typed physical leaves used by the kinetic core.
//
// Every vector quantity is a named [mgl64.Vec3] so that dimensional mistakes
// (adding a force to a momentum, say) fail to compile:
//
//   - [Translation] (m), [LinVel] (m/s), [LinMom] (N·s), [Force] (N)
//   - [AngVel] (rad/s), [AngMom] (N·s·m), [Torque] (N·m)
//
// All of them form an ordinary vector space with Add, Sub, Scale and Neg.
// [Rotation] is the exception: its "addition" is quaternion composition and
// is exposed as [Rotation.Compose] and [Rotation.ComposeInverse] so nobody
// mistakes it for a commutative operation.
//
// The zero value of every vector type is the additive identity. The zero
// value of Rotation is NOT a valid rotation; use [Identity].
package quantity
