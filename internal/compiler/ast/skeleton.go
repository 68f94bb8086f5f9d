package ast

import "fmt"

// skeleton.go holds the fixed runtime scaffolding the generator wraps
// around each program's neighbourhoods and models: the preamble every
// generated program starts with, the per-model function shape, and the
// main-driver prelude/dispatch/postlude. None of this depends on a
// particular program's content beyond the model id list.

const preamble = `#include <iostream>
#include <string.h>
#include <string>
#include <system_error>
#include <vector>
#include <algorithm>
#include <memory>
#include <utility>
int steps = 0;
std::string name;
std::vector<char> prev;
int width = 0;
int height = 0;
int coordinate1d(int x) {
 return x % width;
}
std::vector<int> vec1d(std::vector<int> l) { return l; };
std::vector<std::pair<int,int>> vec2d(std::vector<std::pair<int,int>> l) { return l; };
int coordinate2d(std::pair<int,int> p) {
    return (p.first % height) + (width * (p.second % height));
};
std::pair<int,int> add_point(std::pair<int,int> l, int x, int y) {
    return std::pair<int,int>{l.first + x, l.second + y};
};
`

// modelFunction wraps body (the if/else chain every non-default state
// contributed, followed by the default state's branch) in the looping
// shape appropriate to dims.
func modelFunction(id string, dims int, body string) string {
	code := fmt.Sprintf("const char* %s() {\n", id)
	var endingBrace string
	if dims == 1 {
		code += `   if(height > 1) {
       return "Error: Expected 1 Dimension for INPUT.";
   }
   std::vector<char> next(width);
   for(int t = 0; t < steps; t++) {
       for(int x = 0; x < width; x++) {
           int current = x;
           `
	} else {
		code += `   std::vector<char> next(width * height);
   for(int t = 0; t < steps; t++) {
       for(int x = 0; x < width; x++) {
       for(int y = 0; y < height; y++) {
           int current = coordinate2d({x,y});
           `
		endingBrace = "       }\n"
	}

	code += body
	code += endingBrace
	code += `       }
       std::copy(next.begin(), next.end(), prev.begin());
   }
   return "";
}
`
	return code
}

// mainPrelude emits the argument-parsing and INPUT-file-reading half of
// the main driver. It does not depend on the model list.
func mainPrelude(models []*Model) string {
	return `int main(int argc, char **argv) {
   name = std::string(argv[0]);
   if(argc != 5) {
   std::cout << "Error: Missing operands\nUsage: ./" +  name + " INPUT MODEL STEPS OUTPUT\n";   return 1;
   }
   steps = std::atoi(argv[3]);
   if(steps == 0) {
       std::cout << "Error: Incorrect 3rd operand STEPS must be > 0\n";
       return 1;
   }
   FILE *input = fopen(argv[1], "r");
   if(input == NULL) {
       perror("Error: Unable to open input file.\n");
       return 1;
   }
   int pos = 0;
   char c;
   while((c = getc(input)) != EOF) {
       if(c == '\n' || c == '\r') {
           height++;
           pos = 0;
       } else {
           prev.push_back(c);
       }
       pos++;
       if(height == 0) {
           width = pos;
       } else if(pos > width) {
           std::cout << "Error: Contradicing dimensions within INPUT file.\n";
           return 1;
       }
   }
   std::string model(argv[2]);   std::string error;
    `
}

// mainDispatch emits the if/else-if chain that calls the generated
// function for whichever model name was passed on the command line.
func mainDispatch(models []*Model) string {
	var cases string
	for _, m := range models {
		cases += fmt.Sprintf(`if(model == "%s") {
       if((error = %s()) != "") {
           std::cout << error + "\n";
           return 1;
       }
   } else `, m.ID, m.ID)
	}
	return cases
}

// mainPostlude emits the fallback branch of the dispatch chain and the
// OUTPUT-file-writing tail of the main driver.
const mainPostlude = ` {
       std::cout << "Error: Incorrect 2nd operand MODEL must be a name of a model\n";
       return 1;
   }
   fclose(input);
   FILE *output = fopen(argv[4], "w");
   pos = 0;
   while(pos < prev.size()) {
       putc(prev.at(pos), output);
       pos++;
       if(pos % width == 0) {
           putc('\n', output);
       }
   }
   return 0;
}
`
