/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single protobuf configuration message under the
"_c:<pkg>" key. The initial value is loaded from the genesis file
(opts["conf"][pkg]) and can later be patched by the administrator using an
UpdateConfigurationHandler.

Not being able to get a configuration value is a critical condition for the
application. Extensions return the load error instead of falling back to
defaults, so a misconfigured chain fails loudly.
*/
package gconf
