// Package govuk provides tools for answering questions from GOV.UK:
//
//   - search_govuk: Google Custom Search restricted to GOV.UK, with the main
//     text of each result page fetched concurrently.
//   - search_govuk_services: the GOV.UK services finder.
//   - uk_bank_holidays: the official bank holiday feed, filterable by region
//     and year.
//
// All tools report failures as errors, which the tool registry turns into
// observations for the model.
package govuk
