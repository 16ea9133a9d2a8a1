// Package stubstats computes per-page revision statistics from the
// wikipedia stub dump format (page and revision metadata, without the
// revision text itself).
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// In particular, I've worked mostly with the enwiki stub-meta-history
// dumps from here:
//    http://dumps.wikimedia.org/enwiki/
//
// See the example programs in subpackages for an idea of how I've
// made use of these things.
package stubstats
