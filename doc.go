/*
Package trust defines the common interfaces shared by the escrow engine and
its supporting packages, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

We pass context through context.Context between the application, decorators
and handlers. trust defines a few common keys to store info, such as the chain
id and the logger. Each extension may add its own keys to enrich the context
with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value.
*/
package trust
