/*
Package app links the extensions into a running application.

Router dispatches every message to the handler registered for its path and
ChainDecorators wraps that router with the shared decorators. Application
delivers transactions one at a time against the working state, runs the
genesis initializers and commits new versions of the state.
*/
package app
